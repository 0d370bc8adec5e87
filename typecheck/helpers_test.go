package typecheck

import (
	"testing"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/symbols"
)

type fixture struct {
	tbl *symbols.Table
	ctx *Context
}

func newFixture() *fixture {
	tbl := symbols.NewTable()
	return &fixture{tbl: tbl, ctx: NewContext(tbl)}
}

func (f *fixture) sym(name string) symbols.Symbol {
	return f.tbl.Intern(name)
}

func (f *fixture) ident(name string) ast.Expr {
	return ast.Ident{Name: f.sym(name)}
}

func (f *fixture) param(typ ast.Expr, name string) ast.Param {
	return ast.Param{Type: typ, Name: f.sym(name)}
}

func (f *fixture) assign(name string, v ast.Expr) ast.Assign {
	return ast.Assign{Name: f.sym(name), Value: v}
}

func lit(kind ast.LiteralKind) ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: kind}}
}

func integral(v uint64) ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: v}}
}

func boolean(v bool) ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: ast.Boolean, Boolean: v}}
}

// pairType is the dependent telescope struct { type T; T v; }.
func (f *fixture) pairType() ast.Expr {
	return ast.Struct{Fields: []ast.Param{
		f.param(lit(ast.Type), "T"),
		f.param(f.ident("T"), "v"),
	}}
}

func (f *fixture) mustEval(t *testing.T, e ast.Expr) ast.Expr {
	t.Helper()
	out, err := Eval(f.ctx, e)
	if err != nil {
		t.Fatalf("Eval(%s) failed: %v", ast.ExprString(e), err)
	}
	return out
}

func (f *fixture) mustInfer(t *testing.T, e ast.Expr) ast.Expr {
	t.Helper()
	out, err := Infer(f.ctx, e)
	if err != nil {
		t.Fatalf("Infer(%s) failed: %v", ast.ExprString(e), err)
	}
	return out
}

func (f *fixture) assertEqualTypes(t *testing.T, t1, t2 ast.Expr) {
	t.Helper()
	eq, err := Equal(f.ctx, t1, t2)
	if err != nil {
		t.Fatalf("Equal(%s, %s) failed: %v", ast.ExprString(t1), ast.ExprString(t2), err)
	}
	if !eq {
		t.Errorf("types %s and %s are not equal", ast.ExprString(t1), ast.ExprString(t2))
	}
}

func (f *fixture) assertUnequalTypes(t *testing.T, t1, t2 ast.Expr) {
	t.Helper()
	eq, err := Equal(f.ctx, t1, t2)
	if err != nil {
		t.Fatalf("Equal(%s, %s) failed: %v", ast.ExprString(t1), ast.ExprString(t2), err)
	}
	if eq {
		t.Errorf("types %s and %s compare equal", ast.ExprString(t1), ast.ExprString(t2))
	}
}
