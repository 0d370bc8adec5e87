package ast

import (
	"testing"
)

func sampleExprs(f *fixture) []Expr {
	return []Expr{
		lit(Type),
		lit(U32),
		integral(42),
		boolean(true),
		f.ident("x"),
		BinOp{Op: OpAdd, L: integral(1), R: f.ident("n")},
		IfThenElse{Pred: f.ident("p"), Then: integral(1), Else: integral(2)},
		FuncType{
			Ret:    f.ident("T"),
			Params: []Param{f.param(lit(Type), "T"), {Type: lit(U32)}},
		},
		Lambda{
			Params: []Param{f.param(lit(U32), "x")},
			Body:   BinOp{Op: OpAdd, L: f.ident("x"), R: integral(1)},
		},
		Call{Func: f.ident("f"), Args: []Expr{integral(1), f.ident("y")}},
		Struct{Fields: []Param{
			f.param(lit(Type), "T"),
			f.param(f.ident("T"), "v"),
		}},
		Union{Fields: []Param{
			f.param(lit(U32), "a"),
			f.param(lit(Bool), "b"),
		}},
		Pack{
			Type: f.ident("pair"),
			Assigns: []Assign{
				{Name: f.sym("a"), Value: integral(1)},
				{Name: f.sym("b"), Value: f.ident("z")},
			},
		},
		Member{Record: f.ident("r"), Field: f.sym("a")},
		Pointer{Inner: lit(U8)},
		Reference{Inner: f.ident("x")},
		Dereference{Inner: f.ident("p")},
	}
}

func TestCopyEqualRoundTrip(t *testing.T) {
	f := newFixture()
	for _, e := range sampleExprs(f) {
		if !Equal(Copy(e), e) {
			t.Errorf("Copy(%s) is not Equal to the original", ExprString(e))
		}
	}
}

func TestCopySharesNoStorage(t *testing.T) {
	f := newFixture()
	original := FuncType{
		Ret:    f.ident("T"),
		Params: []Param{f.param(lit(Type), "T"), f.param(f.ident("T"), "x")},
	}
	pristine := Copy(original).(FuncType)

	mutated := Copy(original).(FuncType)
	mutated.Params[0] = Param{Type: lit(Void), Name: f.sym("clobbered")}
	mutated.Params[1].Type = lit(Void)

	if !Equal(original, pristine) {
		t.Errorf("mutating a copy changed the original: %s", ExprString(original))
	}
}

func TestEqualDistinguishesVariants(t *testing.T) {
	f := newFixture()
	samples := sampleExprs(f)
	for i, x := range samples {
		for j, y := range samples {
			if (i == j) != Equal(x, y) {
				t.Errorf("Equal(%s, %s) = %v", ExprString(x), ExprString(y), Equal(x, y))
			}
		}
	}
}

func TestEqualIsNotAlphaAware(t *testing.T) {
	f := newFixture()
	a := Lambda{Params: []Param{f.param(lit(U32), "x")}, Body: f.ident("x")}
	b := Lambda{Params: []Param{f.param(lit(U32), "y")}, Body: f.ident("y")}
	if Equal(a, b) {
		t.Errorf("structural equality identified alpha-equivalent lambdas")
	}
}

func TestLiteralEquality(t *testing.T) {
	if Equal(integral(1), integral(2)) {
		t.Errorf("1 == 2")
	}
	if Equal(lit(U32), integral(0)) {
		t.Errorf("type literal u32 equals value literal 0")
	}
	if !Equal(lit(S16), lit(S16)) {
		t.Errorf("s16 != s16")
	}
	if Equal(boolean(true), boolean(false)) {
		t.Errorf("true == false")
	}
}

func TestBlockCopyAndEquality(t *testing.T) {
	f := newFixture()
	block := Block{
		Decl{Type: lit(U32), Name: f.sym("x"), Value: integral(1)},
		IfChain{
			Conds: []Expr{boolean(true)},
			Thens: []Block{{Return{Expr: f.ident("x")}}},
			Else:  Block{Empty{}},
		},
		ExprStatement{Expr: f.ident("x")},
		Subblock{Body: Block{Return{Expr: integral(0)}}},
	}

	dup := CopyBlock(block)
	if !BlockEqual(block, dup) {
		t.Fatalf("copied block is not equal to the original")
	}

	dup[0] = Empty{}
	if BlockEqual(block, dup) {
		t.Errorf("blocks equal after mutating the copy")
	}
}

func TestTopLevelCopy(t *testing.T) {
	f := newFixture()
	fn := Func{
		Name:   f.sym("main"),
		Ret:    lit(U32),
		Params: []Param{f.param(lit(Type), "T")},
		Body:   Block{Return{Expr: integral(0)}},
	}
	dup := CopyTopLevel(fn).(Func)
	if dup.Name != fn.Name || !Equal(dup.Ret, fn.Ret) ||
		!paramsEqual(dup.Params, fn.Params) || !BlockEqual(dup.Body, fn.Body) {
		t.Errorf("top-level copy differs from the original")
	}
}
