package main

import (
	"strings"
	"testing"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/lexer"
	"github.com/depc-lang/depc/symbols"
)

func newTestParser(src string, tbl *symbols.Table) Parser {
	return NewParser(lexer.NewLexer(strings.NewReader(src), "test"), tbl)
}

func parseExpr(t *testing.T, tbl *symbols.Table, src string) (e ast.Expr) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("parsing %q panicked: %v", src, r)
		}
	}()
	p := newTestParser(src, tbl)
	return p.parseExpression()
}

func parseUnit(t *testing.T, tbl *symbols.Table, src string) ast.TranslationUnit {
	t.Helper()
	p := newTestParser(src, tbl)
	unit, err := p.Parse()
	if err != nil {
		t.Fatalf("parsing %q failed: %v", src, err)
	}
	return unit
}

func assertExpr(t *testing.T, tbl *symbols.Table, src string, want ast.Expr) {
	t.Helper()
	got := parseExpr(t, tbl, src)
	if !ast.Equal(got, want) {
		t.Errorf("parsed %q as %s, want %s", src, ast.ExprString(got), ast.ExprString(want))
	}
}

func TestParseTopLevel(t *testing.T) {
	tbl := symbols.NewTable()
	unit := parseUnit(t, tbl, "T id(type T, T x) { return x; }")

	if len(unit.TopLevels) != 1 {
		t.Fatalf("got %d top levels", len(unit.TopLevels))
	}
	f := unit.TopLevels[0].(ast.Func)
	if f.Name != tbl.Intern("id") {
		t.Errorf("name is %s", f.Name)
	}
	if !ast.Equal(f.Ret, ast.Ident{Name: tbl.Intern("T")}) {
		t.Errorf("return type is %s", ast.ExprString(f.Ret))
	}
	if len(f.Params) != 2 || f.Params[0].Name != tbl.Intern("T") || f.Params[1].Name != tbl.Intern("x") {
		t.Errorf("params are %#v", f.Params)
	}
	want := ast.Block{ast.Return{Expr: ast.Ident{Name: tbl.Intern("x")}}}
	if !ast.BlockEqual(f.Body, want) {
		t.Errorf("body is %s", f.Body)
	}
}

func TestParseUnnamedParam(t *testing.T) {
	tbl := symbols.NewTable()
	unit := parseUnit(t, tbl, "void f(u32) { ; }")
	f := unit.TopLevels[0].(ast.Func)
	if len(f.Params) != 1 || f.Params[0].Name.Valid() {
		t.Errorf("params are %#v", f.Params)
	}
}

func TestParsePrecedence(t *testing.T) {
	tbl := symbols.NewTable()
	// + binds tighter than ==, which binds tighter than >>.
	assertExpr(t, tbl, "1 + 2 == 3 >> true", ast.BinOp{
		Op: ast.OpAndThen,
		L: ast.BinOp{
			Op: ast.OpEq,
			L: ast.BinOp{
				Op: ast.OpAdd,
				L:  ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 1}},
				R:  ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 2}},
			},
			R: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 3}},
		},
		R: ast.Lit{Literal: ast.Literal{Kind: ast.Boolean, Boolean: true}},
	})

	// Parentheses override.
	assertExpr(t, tbl, "1 + (2 == 3)", ast.BinOp{
		Op: ast.OpAdd,
		L:  ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 1}},
		R: ast.BinOp{
			Op: ast.OpEq,
			L:  ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 2}},
			R:  ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 3}},
		},
	})
}

func TestParseFuncType(t *testing.T) {
	tbl := symbols.NewTable()
	assertExpr(t, tbl, "T[type T, T x]", ast.FuncType{
		Ret: ast.Ident{Name: tbl.Intern("T")},
		Params: []ast.Param{
			{Type: ast.Lit{Literal: ast.Literal{Kind: ast.Type}}, Name: tbl.Intern("T")},
			{Type: ast.Ident{Name: tbl.Intern("T")}, Name: tbl.Intern("x")},
		},
	})
}

func TestParsePostfixChain(t *testing.T) {
	tbl := symbols.NewTable()
	// Member access, call, and pointer suffixes stack left to right.
	assertExpr(t, tbl, "r.v", ast.Member{
		Record: ast.Ident{Name: tbl.Intern("r")},
		Field:  tbl.Intern("v"),
	})
	assertExpr(t, tbl, "f(1)(2)", ast.Call{
		Func: ast.Call{
			Func: ast.Ident{Name: tbl.Intern("f")},
			Args: []ast.Expr{ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 1}}},
		},
		Args: []ast.Expr{ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 2}}},
	})
	assertExpr(t, tbl, "u32*", ast.Pointer{Inner: ast.Lit{Literal: ast.Literal{Kind: ast.U32}}})
	assertExpr(t, tbl, "u32**", ast.Pointer{Inner: ast.Pointer{Inner: ast.Lit{Literal: ast.Literal{Kind: ast.U32}}}})
}

func TestParsePrefix(t *testing.T) {
	tbl := symbols.NewTable()
	assertExpr(t, tbl, "&x", ast.Reference{Inner: ast.Ident{Name: tbl.Intern("x")}})
	assertExpr(t, tbl, "*p", ast.Dereference{Inner: ast.Ident{Name: tbl.Intern("p")}})
	assertExpr(t, tbl, "*&x", ast.Dereference{Inner: ast.Reference{Inner: ast.Ident{Name: tbl.Intern("x")}}})
}

func TestParseStructAndUnion(t *testing.T) {
	tbl := symbols.NewTable()
	assertExpr(t, tbl, "struct { type T; T v; }", ast.Struct{Fields: []ast.Param{
		{Type: ast.Lit{Literal: ast.Literal{Kind: ast.Type}}, Name: tbl.Intern("T")},
		{Type: ast.Ident{Name: tbl.Intern("T")}, Name: tbl.Intern("v")},
	}})
	assertExpr(t, tbl, "union { u32 a; bool b; }", ast.Union{Fields: []ast.Param{
		{Type: ast.Lit{Literal: ast.Literal{Kind: ast.U32}}, Name: tbl.Intern("a")},
		{Type: ast.Lit{Literal: ast.Literal{Kind: ast.Bool}}, Name: tbl.Intern("b")},
	}})
}

func TestParsePack(t *testing.T) {
	tbl := symbols.NewTable()
	assertExpr(t, tbl, "[struct { type T; T v; }]{.T = u32, .v = 5}", ast.Pack{
		Type: ast.Struct{Fields: []ast.Param{
			{Type: ast.Lit{Literal: ast.Literal{Kind: ast.Type}}, Name: tbl.Intern("T")},
			{Type: ast.Ident{Name: tbl.Intern("T")}, Name: tbl.Intern("v")},
		}},
		Assigns: []ast.Assign{
			{Name: tbl.Intern("T"), Value: ast.Lit{Literal: ast.Literal{Kind: ast.U32}}},
			{Name: tbl.Intern("v"), Value: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 5}}},
		},
	})
}

func TestParseLambdaAndConditional(t *testing.T) {
	tbl := symbols.NewTable()
	assertExpr(t, tbl, "\\(type T, T x) -> x", ast.Lambda{
		Params: []ast.Param{
			{Type: ast.Lit{Literal: ast.Literal{Kind: ast.Type}}, Name: tbl.Intern("T")},
			{Type: ast.Ident{Name: tbl.Intern("T")}, Name: tbl.Intern("x")},
		},
		Body: ast.Ident{Name: tbl.Intern("x")},
	})
	assertExpr(t, tbl, "if p then 1 else 2", ast.IfThenElse{
		Pred: ast.Ident{Name: tbl.Intern("p")},
		Then: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 1}},
		Else: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 2}},
	})
}

func TestParseStatements(t *testing.T) {
	tbl := symbols.NewTable()
	unit := parseUnit(t, tbl, `
u32 f(bool p) {
    ;
    u32 n = 1;
    u32 m;
    n + n;
    {
        return n;
    }
    if (p) {
        return n;
    } else if (n < 2) {
        return 2;
    } else {
        return 3;
    }
}
`)
	body := unit.TopLevels[0].(ast.Func).Body
	want := ast.Block{
		ast.Empty{},
		ast.Decl{
			Type:  ast.Lit{Literal: ast.Literal{Kind: ast.U32}},
			Name:  tbl.Intern("n"),
			Value: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 1}},
		},
		ast.Decl{Type: ast.Lit{Literal: ast.Literal{Kind: ast.U32}}, Name: tbl.Intern("m")},
		ast.ExprStatement{Expr: ast.BinOp{
			Op: ast.OpAdd,
			L:  ast.Ident{Name: tbl.Intern("n")},
			R:  ast.Ident{Name: tbl.Intern("n")},
		}},
		ast.Subblock{Body: ast.Block{ast.Return{Expr: ast.Ident{Name: tbl.Intern("n")}}}},
		ast.IfChain{
			Conds: []ast.Expr{
				ast.Ident{Name: tbl.Intern("p")},
				ast.BinOp{
					Op: ast.OpLt,
					L:  ast.Ident{Name: tbl.Intern("n")},
					R:  ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 2}},
				},
			},
			Thens: []ast.Block{
				{ast.Return{Expr: ast.Ident{Name: tbl.Intern("n")}}},
				{ast.Return{Expr: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 2}}}},
			},
			Else: ast.Block{ast.Return{Expr: ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: 3}}}},
		},
	}
	if !ast.BlockEqual(body, want) {
		t.Errorf("parsed body:\n%s\nwant:\n%s", body, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	sources := []string{
		"T id(type T, T x) { return x; }",
		"u32 f(u32 n) { return n + 1; }",
		"type pair() { return struct { type T; T v; }; }",
		"u32 proj() { return ([struct { type T; T v; }]{.T = u32, .v = 5}).v; }",
		"bool g(bool p) { if (p) { return false; } return p == true; }",
		"void h(u32* p, u32 n) { u32 m = *p; ; }",
	}
	for _, src := range sources {
		tbl := symbols.NewTable()
		printed := parseUnit(t, tbl, src).String()
		again := parseUnit(t, tbl, printed).String()
		if printed != again {
			t.Errorf("round trip of %q diverges:\nfirst:\n%s\nsecond:\n%s", src, printed, again)
		}
	}
}

func TestParseErrorIsReturned(t *testing.T) {
	tbl := symbols.NewTable()
	p := newTestParser("u32 f( { }", tbl)
	if _, err := p.Parse(); err == nil {
		t.Fatal("malformed input parsed without error")
	}
}
