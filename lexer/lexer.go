package lexer

import (
	"bufio"
	"io"
	"unicode"

	"github.com/depc-lang/depc/errors"
	"github.com/depc-lang/depc/types"
)

type Lexer struct {
	pos          types.Position
	reader       *bufio.Reader
	peeked       *types.Token
	peekedString string
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) kinded(t types.TokenKind) types.Token {
	return types.Token{
		Location: types.SingleCharSpan(l.pos),
		Kind:     t,
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

var keywords = map[string]types.TokenKind{
	"type":   types.TYPE,
	"void":   types.VOID,
	"u8":     types.U8,
	"s8":     types.S8,
	"u16":    types.U16,
	"s16":    types.S16,
	"u32":    types.U32,
	"s32":    types.S32,
	"u64":    types.U64,
	"s64":    types.S64,
	"bool":   types.BOOL,
	"true":   types.TRUE,
	"false":  types.FALSE,
	"struct": types.STRUCT,
	"union":  types.UNION,
	"if":     types.IF,
	"then":   types.THEN,
	"else":   types.ELSE,
	"return": types.RETURN,
}

var punctuation = map[rune]types.TokenKind{
	'(':  types.LPAREN,
	')':  types.RPAREN,
	'{':  types.LBRACE,
	'}':  types.RBRACE,
	'[':  types.LBRACKET,
	']':  types.RBRACKET,
	';':  types.SEMICOLON,
	',':  types.COMMA,
	'.':  types.PERIOD,
	'&':  types.AMPERSAND,
	'*':  types.ASTERISK,
	'\\': types.BACKSLASH,
	'+':  types.PLUS,
}

func (l *Lexer) lexIdent() (types.Position, types.Position, string) {
	var lit string
	var from types.Position
	var to types.Position

	r, _, err := l.reader.ReadRune()
	l.pos.Column++
	from = l.pos

	for {
		if err != nil {
			if err == io.EOF {
				return from, to, lit
			}
			panic(err)
		}

		if otherChar(r) {
			lit += string(r)
		} else {
			l.backup()
			to = l.pos
			return from, to, lit
		}

		r, _, err = l.reader.ReadRune()
		l.pos.Column++
		to = l.pos
	}
}

// followedBy consumes the next byte when it equals b.
func (l *Lexer) followedBy(b byte) bool {
	byt, err := l.reader.Peek(1)
	if err != nil && err != io.EOF {
		panic(err)
	}
	if err == io.EOF || byt[0] != b {
		return false
	}

	if _, _, err := l.reader.ReadRune(); err != nil {
		panic(err)
	}
	l.pos.Column++
	return true
}

func (l *Lexer) Peek() (types.Token, string) {
	if l.peeked != nil {
		return *l.peeked, l.peekedString
	}

	tok, str := l.Lex()
	l.peeked = &tok
	l.peekedString = str

	return tok, str
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token, _ := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) PeekIsWithRet(k ...types.TokenKind) (bool, types.Token, string) {
	token, lit := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true, token, lit
		}
	}

	return false, types.Token{}, ""
}

func (l *Lexer) LexWithI(i int, kinds ...types.TokenKind) (t types.Token, s string) {
	for idx, kind := range kinds {
		tok, lit := l.LexExpecting(kind)
		if idx == i {
			t = tok
			s = lit
		}
	}

	return
}

func (l *Lexer) LexExpecting(k ...types.TokenKind) (types.Token, string) {
	token, lit := l.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token, lit
		}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      token.Kind,
		Location: token.Location,
	})
}

func (l *Lexer) Lex() (types.Token, string) {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked, l.peekedString
	}

	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return l.kinded(types.EOF), ""
			}
			panic(err)
		}

		l.pos.Column++

		switch r {
		case '=':
			if l.followedBy('=') {
				return l.kinded(types.EQ), "=="
			}
			return l.kinded(types.ASSIGN), "="
		case '!':
			if l.followedBy('=') {
				return l.kinded(types.NE), "!="
			}
			panic(errors.UnexpectedRune{Rune: r, Location: l.pos})
		case '<':
			if l.followedBy('=') {
				return l.kinded(types.LE), "<="
			}
			return l.kinded(types.LT), "<"
		case '>':
			if l.followedBy('>') {
				return l.kinded(types.ANDTHEN), ">>"
			}
			if l.followedBy('=') {
				return l.kinded(types.GE), ">="
			}
			return l.kinded(types.GT), ">"
		case '-':
			if l.followedBy('>') {
				return l.kinded(types.ARROW), "->"
			}
			return l.kinded(types.MINUS), "-"
		case '/':
			if l.followedBy('/') {
				for {
					r, _, err := l.reader.ReadRune()
					if err != nil {
						if err == io.EOF {
							return l.kinded(types.EOF), ""
						}
						panic(err)
					}
					if r == '\n' {
						break
					}
				}
				l.newline()
				continue
			}
			panic(errors.UnexpectedRune{Rune: r, Location: l.pos})
		}

		if kind, ok := punctuation[r]; ok {
			return l.kinded(kind), string(r)
		}

		switch {
		case r == '\n':
			l.newline()
			continue
		case unicode.IsSpace(r):
			continue
		case unicode.IsDigit(r):
			var runes string
			runes += string(r)
			for {
				r, _, err := l.reader.ReadRune()
				if err != nil {
					if err == io.EOF {
						return l.kinded(types.INT), runes
					}
					panic(err)
				}
				l.pos.Column++

				if !unicode.IsDigit(r) {
					l.backup()
					return l.kinded(types.INT), runes
				}

				runes += string(r)
			}
		case firstChar(r):
			l.backup()
			from, to, lit := l.lexIdent()

			if kind, ok := keywords[lit]; ok {
				return types.Token{Kind: kind, Location: types.Span{From: from, To: to}}, lit
			}

			return types.Token{Kind: types.IDENT, Location: types.Span{From: from, To: to}}, lit
		}

		panic(errors.UnexpectedRune{Rune: r, Location: l.pos})
	}
}

type testToken struct {
	t types.Token
	s string
}

func (l *Lexer) lexToEOF() (ret []testToken) {
	t, s := l.Lex()
	for t.Kind != types.EOF {
		ret = append(ret, testToken{
			t: t,
			s: s,
		})
		t, s = l.Lex()
	}
	return
}
