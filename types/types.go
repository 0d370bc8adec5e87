package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	PERIOD
	ASSIGN
	AMPERSAND
	ASTERISK
	BACKSLASH
	ARROW

	EQ
	NE
	LT
	LE
	GT
	GE
	PLUS
	MINUS
	ANDTHEN

	INT
	IDENT

	TYPE
	VOID
	U8
	S8
	U16
	S16
	U32
	S32
	U64
	S64
	BOOL
	TRUE
	FALSE
	STRUCT
	UNION
	IF
	THEN
	ELSE
	RETURN
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:       "EOF",
		ILLEGAL:   "ILLEGAL",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		LBRACE:    "LBRACE",
		RBRACE:    "RBRACE",
		LBRACKET:  "LBRACKET",
		RBRACKET:  "RBRACKET",
		SEMICOLON: "SEMICOLON",
		COMMA:     "COMMA",
		PERIOD:    "PERIOD",
		ASSIGN:    "ASSIGN",
		AMPERSAND: "AMPERSAND",
		ASTERISK:  "ASTERISK",
		BACKSLASH: "BACKSLASH",
		ARROW:     "ARROW",
		EQ:        "EQ",
		NE:        "NE",
		LT:        "LT",
		LE:        "LE",
		GT:        "GT",
		GE:        "GE",
		PLUS:      "PLUS",
		MINUS:     "MINUS",
		ANDTHEN:   "ANDTHEN",
		INT:       "INT",
		IDENT:     "IDENT",
		TYPE:      "TYPE",
		VOID:      "VOID",
		U8:        "U8",
		S8:        "S8",
		U16:       "U16",
		S16:       "S16",
		U32:       "U32",
		S32:       "S32",
		U64:       "U64",
		S64:       "S64",
		BOOL:      "BOOL",
		TRUE:      "TRUE",
		FALSE:     "FALSE",
		STRUCT:    "STRUCT",
		UNION:     "UNION",
		IF:        "IF",
		THEN:      "THEN",
		ELSE:      "ELSE",
		RETURN:    "RETURN",
	}
	return data[t]
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Location Span
}
