package main

import (
	"strconv"

	"github.com/ztrue/tracerr"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/errors"
	"github.com/depc-lang/depc/lexer"
	"github.com/depc-lang/depc/symbols"
	"github.com/depc-lang/depc/types"
)

type Parser struct {
	l   *lexer.Lexer
	tbl *symbols.Table
}

func NewParser(l *lexer.Lexer, tbl *symbols.Table) Parser {
	return Parser{l, tbl}
}

var literalKinds = map[types.TokenKind]ast.LiteralKind{
	types.TYPE: ast.Type,
	types.VOID: ast.Void,
	types.U8:   ast.U8,
	types.S8:   ast.S8,
	types.U16:  ast.U16,
	types.S16:  ast.S16,
	types.U32:  ast.U32,
	types.S32:  ast.S32,
	types.U64:  ast.U64,
	types.S64:  ast.S64,
	types.BOOL: ast.Bool,
}

// Parse reads top-level declarations until EOF. Parsing routines panic
// on unexpected input; the panic is recovered and wrapped here.
func (p *Parser) Parse() (unit ast.TranslationUnit, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	for !p.l.PeekIs(types.EOF) {
		unit.TopLevels = append(unit.TopLevels, p.parseTopLevel())
	}
	return
}

// parseTopLevel reads `ret name(params) { block }`.
func (p *Parser) parseTopLevel() ast.TopLevel {
	ret := p.parseExpression()
	_, name := p.l.LexExpecting(types.IDENT)

	p.l.LexExpecting(types.LPAREN)
	params := p.parseParams(types.RPAREN)
	p.l.LexExpecting(types.RPAREN)

	p.l.LexExpecting(types.LBRACE)
	body := p.parseBlock()

	return ast.Func{
		Name:   p.tbl.Intern(name),
		Ret:    ret,
		Params: params,
		Body:   body,
	}
}

// parseParams reads `expr name?, ...` up to the closing token, which is
// left unconsumed.
func (p *Parser) parseParams(closing types.TokenKind) []ast.Param {
	var params []ast.Param

	for !p.l.PeekIs(closing) {
		param := ast.Param{Type: p.parseExpression()}
		if ok, _, name := p.l.PeekIsWithRet(types.IDENT); ok {
			p.l.LexExpecting(types.IDENT)
			param.Name = p.tbl.Intern(name)
		}
		params = append(params, param)

		if !p.l.PeekIs(closing) {
			p.l.LexExpecting(types.COMMA)
		}
	}
	return params
}

// parseBlock should be called with the parser past the opening brace.
func (p *Parser) parseBlock() ast.Block {
	var statements ast.Block

	for !p.l.PeekIs(types.RBRACE) {
		statements = append(statements, p.parseStatement())
	}
	p.l.LexExpecting(types.RBRACE)

	return statements
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.l.PeekIs(types.SEMICOLON):
		p.l.LexExpecting(types.SEMICOLON)
		return ast.Empty{}

	case p.l.PeekIs(types.LBRACE):
		p.l.LexExpecting(types.LBRACE)
		return ast.Subblock{Body: p.parseBlock()}

	case p.l.PeekIs(types.RETURN):
		p.l.LexExpecting(types.RETURN)
		expr := p.parseExpression()
		p.l.LexExpecting(types.SEMICOLON)
		return ast.Return{Expr: expr}

	case p.l.PeekIs(types.IF):
		return p.parseIfChain()
	}

	// Either a declaration `type name (= value)? ;` or a bare
	// expression statement; a trailing identifier decides.
	expr := p.parseExpression()

	if ok, _, name := p.l.PeekIsWithRet(types.IDENT); ok {
		p.l.LexExpecting(types.IDENT)
		decl := ast.Decl{Type: expr, Name: p.tbl.Intern(name)}
		if p.l.PeekIs(types.ASSIGN) {
			p.l.LexExpecting(types.ASSIGN)
			decl.Value = p.parseExpression()
		}
		p.l.LexExpecting(types.SEMICOLON)
		return decl
	}

	p.l.LexExpecting(types.SEMICOLON)
	return ast.ExprStatement{Expr: expr}
}

// parseIfChain reads `if (c) { } else if (c) { } ... else { }`.
func (p *Parser) parseIfChain() ast.Statement {
	chain := ast.IfChain{}

	for {
		p.l.LexExpecting(types.IF)
		p.l.LexExpecting(types.LPAREN)
		chain.Conds = append(chain.Conds, p.parseExpression())
		p.l.LexExpecting(types.RPAREN)
		p.l.LexExpecting(types.LBRACE)
		chain.Thens = append(chain.Thens, p.parseBlock())

		if !p.l.PeekIs(types.ELSE) {
			return chain
		}
		p.l.LexExpecting(types.ELSE)

		if p.l.PeekIs(types.IF) {
			continue
		}
		p.l.LexExpecting(types.LBRACE)
		chain.Else = p.parseBlock()
		return chain
	}
}

// Binary operators parse in three precedence tiers: sequencing binds
// loosest, then comparisons, then additive arithmetic. All tiers
// associate left.
func (p *Parser) parseExpression() ast.Expr {
	expr := p.parseComparison()

	for p.l.PeekIs(types.ANDTHEN) {
		p.l.LexExpecting(types.ANDTHEN)
		expr = ast.BinOp{Op: ast.OpAndThen, L: expr, R: p.parseComparison()}
	}
	return expr
}

var comparisonOps = map[types.TokenKind]ast.BinaryOp{
	types.EQ: ast.OpEq,
	types.NE: ast.OpNe,
	types.LT: ast.OpLt,
	types.LE: ast.OpLe,
	types.GT: ast.OpGt,
	types.GE: ast.OpGe,
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseAdditive()

	for {
		tok, _ := p.l.Peek()
		op, ok := comparisonOps[tok.Kind]
		if !ok {
			return expr
		}
		p.l.Lex()
		expr = ast.BinOp{Op: op, L: expr, R: p.parseAdditive()}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	expr := p.parsePostfix()

	for p.l.PeekIs(types.PLUS, types.MINUS) {
		tok, _ := p.l.Lex()
		op := ast.OpAdd
		if tok.Kind == types.MINUS {
			op = ast.OpSub
		}
		expr = ast.BinOp{Op: op, L: expr, R: p.parsePostfix()}
	}
	return expr
}

// parsePostfix reads a prefix expression and then any number of
// suffixes: a call argument list, a member access, a function type's
// bracketed parameter list, or a pointer star.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrefix()

	for {
		switch {
		case p.l.PeekIs(types.LPAREN):
			p.l.LexExpecting(types.LPAREN)
			var args []ast.Expr
			for !p.l.PeekIs(types.RPAREN) {
				args = append(args, p.parseExpression())
				if !p.l.PeekIs(types.RPAREN) {
					p.l.LexExpecting(types.COMMA)
				}
			}
			p.l.LexExpecting(types.RPAREN)
			expr = ast.Call{Func: expr, Args: args}

		case p.l.PeekIs(types.PERIOD):
			_, field := p.l.LexWithI(1, types.PERIOD, types.IDENT)
			expr = ast.Member{Record: expr, Field: p.tbl.Intern(field)}

		case p.l.PeekIs(types.LBRACKET):
			p.l.LexExpecting(types.LBRACKET)
			params := p.parseParams(types.RBRACKET)
			p.l.LexExpecting(types.RBRACKET)
			expr = ast.FuncType{Ret: expr, Params: params}

		case p.l.PeekIs(types.ASTERISK):
			p.l.LexExpecting(types.ASTERISK)
			expr = ast.Pointer{Inner: expr}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrefix() ast.Expr {
	switch {
	case p.l.PeekIs(types.AMPERSAND):
		p.l.LexExpecting(types.AMPERSAND)
		return ast.Reference{Inner: p.parsePrefix()}
	case p.l.PeekIs(types.ASTERISK):
		p.l.LexExpecting(types.ASTERISK)
		return ast.Dereference{Inner: p.parsePrefix()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok, lit := p.l.Lex()

	if kind, ok := literalKinds[tok.Kind]; ok {
		return ast.Lit{Literal: ast.Literal{Kind: kind}}
	}

	switch tok.Kind {
	case types.INT:
		parsed, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			panic(err)
		}
		return ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: parsed}}

	case types.TRUE:
		return ast.Lit{Literal: ast.Literal{Kind: ast.Boolean, Boolean: true}}

	case types.FALSE:
		return ast.Lit{Literal: ast.Literal{Kind: ast.Boolean, Boolean: false}}

	case types.IDENT:
		return ast.Ident{Name: p.tbl.Intern(lit)}

	case types.IF:
		pred := p.parseExpression()
		p.l.LexExpecting(types.THEN)
		then := p.parseExpression()
		p.l.LexExpecting(types.ELSE)
		els := p.parseExpression()
		return ast.IfThenElse{Pred: pred, Then: then, Else: els}

	case types.BACKSLASH:
		p.l.LexExpecting(types.LPAREN)
		params := p.parseParams(types.RPAREN)
		p.l.LexExpecting(types.RPAREN)
		p.l.LexExpecting(types.ARROW)
		return ast.Lambda{Params: params, Body: p.parseExpression()}

	case types.STRUCT:
		return ast.Struct{Fields: p.parseFieldList()}

	case types.UNION:
		return ast.Union{Fields: p.parseFieldList()}

	case types.LBRACKET:
		// [T]{.a = x, ...} packs a record literal.
		packType := p.parseExpression()
		p.l.LexExpecting(types.RBRACKET)
		p.l.LexExpecting(types.LBRACE)

		var assigns []ast.Assign
		for !p.l.PeekIs(types.RBRACE) {
			_, field := p.l.LexWithI(1, types.PERIOD, types.IDENT)
			p.l.LexExpecting(types.ASSIGN)
			assigns = append(assigns, ast.Assign{
				Name:  p.tbl.Intern(field),
				Value: p.parseExpression(),
			})
			if !p.l.PeekIs(types.RBRACE) {
				p.l.LexExpecting(types.COMMA)
			}
		}
		p.l.LexExpecting(types.RBRACE)

		return ast.Pack{Type: packType, Assigns: assigns}

	case types.LPAREN:
		expr := p.parseExpression()
		p.l.LexExpecting(types.RPAREN)
		return expr
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{
			types.INT, types.IDENT, types.IF, types.BACKSLASH,
			types.STRUCT, types.UNION, types.LBRACKET, types.LPAREN,
		},
		Got:      tok.Kind,
		Location: tok.Location,
	})
}

// parseFieldList reads `{ type name; ... }` after struct/union.
func (p *Parser) parseFieldList() []ast.Param {
	p.l.LexExpecting(types.LBRACE)

	var fields []ast.Param
	for !p.l.PeekIs(types.RBRACE) {
		typ := p.parseExpression()
		_, name := p.l.LexExpecting(types.IDENT)
		p.l.LexExpecting(types.SEMICOLON)
		fields = append(fields, ast.Param{Type: typ, Name: p.tbl.Intern(name)})
	}
	p.l.LexExpecting(types.RBRACE)

	return fields
}
