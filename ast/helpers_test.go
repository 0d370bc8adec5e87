package ast

import (
	"github.com/depc-lang/depc/symbols"
)

// Shared expression builders for the package tests.

type fixture struct {
	tbl *symbols.Table
}

func newFixture() *fixture {
	return &fixture{tbl: symbols.NewTable()}
}

func (f *fixture) sym(name string) symbols.Symbol {
	return f.tbl.Intern(name)
}

func (f *fixture) ident(name string) Expr {
	return Ident{Name: f.sym(name)}
}

func (f *fixture) param(typ Expr, name string) Param {
	return Param{Type: typ, Name: f.sym(name)}
}

func lit(kind LiteralKind) Expr {
	return Lit{Literal{Kind: kind}}
}

func integral(v uint64) Expr {
	return Lit{Literal{Kind: Integral, Integral: v}}
}

func boolean(v bool) Expr {
	return Lit{Literal{Kind: Boolean, Boolean: v}}
}
