package typecheck

import (
	goerrors "errors"
	"testing"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/errors"
	"github.com/depc-lang/depc/symbols"
)

// signatureFunc builds a declaration whose signature mentions the given
// names and whose body is empty.
func (f *fixture) signatureFunc(name string, refs ...string) ast.Func {
	ret := lit(ast.Void)
	params := make([]ast.Param, 0, len(refs))
	for _, r := range refs {
		params = append(params, ast.Param{Type: f.ident(r)})
	}
	return ast.Func{
		Name:   f.sym(name),
		Ret:    ret,
		Params: params,
		Body:   ast.Block{ast.Empty{}},
	}
}

func TestSortOrdersBySignatureDependency(t *testing.T) {
	f := newFixture()
	unit := ast.TranslationUnit{TopLevels: []ast.TopLevel{
		f.signatureFunc("A", "C"),
		f.signatureFunc("B"),
		f.signatureFunc("C", "B"),
	}}
	order, err := Sort(unit)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	want := []int{1, 2, 0}
	if len(order) != len(want) {
		t.Fatalf("got order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

func TestSortIsDeterministic(t *testing.T) {
	f := newFixture()
	unit := ast.TranslationUnit{TopLevels: []ast.TopLevel{
		f.signatureFunc("A"),
		f.signatureFunc("B"),
		f.signatureFunc("C"),
	}}
	first, err := Sort(unit)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	for trial := 0; trial < 20; trial++ {
		again, err := Sort(unit)
		if err != nil {
			t.Fatalf("Sort failed: %v", err)
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("order changed between runs: %v then %v", first, again)
			}
		}
	}
	// Independent declarations stay in source order.
	for i, j := range first {
		if i != j {
			t.Fatalf("independent declarations reordered: %v", first)
		}
	}
}

func TestSortReportsSignatureCycle(t *testing.T) {
	f := newFixture()
	unit := ast.TranslationUnit{TopLevels: []ast.TopLevel{
		f.signatureFunc("A", "B"),
		f.signatureFunc("B", "A"),
		f.signatureFunc("D", "A"),
		f.signatureFunc("E"),
	}}
	_, err := Sort(unit)
	var cyclic errors.CyclicSignatureDependency
	if !goerrors.As(err, &cyclic) {
		t.Fatalf("got %v, want CyclicSignatureDependency", err)
	}
	// Only A and B are on the cycle; D merely depends on it.
	want := map[symbols.Symbol]bool{f.sym("A"): true, f.sym("B"): true}
	if len(cyclic.Participants) != len(want) {
		t.Fatalf("participants %v, want exactly A and B", cyclic.Participants)
	}
	for _, p := range cyclic.Participants {
		if !want[p] {
			t.Errorf("unexpected cycle participant %s", p)
		}
	}
}

func TestSortIgnoresBodies(t *testing.T) {
	f := newFixture()
	// Mutually recursive bodies are fine as long as the signatures are
	// independent.
	even := ast.Func{
		Name:   f.sym("even"),
		Ret:    lit(ast.Bool),
		Params: []ast.Param{f.param(lit(ast.U32), "n")},
		Body: ast.Block{ast.Return{Expr: ast.Call{
			Func: f.ident("odd"),
			Args: []ast.Expr{f.ident("n")},
		}}},
	}
	odd := ast.Func{
		Name:   f.sym("odd"),
		Ret:    lit(ast.Bool),
		Params: []ast.Param{f.param(lit(ast.U32), "n")},
		Body: ast.Block{ast.Return{Expr: ast.Call{
			Func: f.ident("even"),
			Args: []ast.Expr{f.ident("n")},
		}}},
	}
	unit := ast.TranslationUnit{TopLevels: []ast.TopLevel{even, odd}}
	order, err := Sort(unit)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if order[0] != 0 || order[1] != 1 {
		t.Errorf("got order %v, want source order", order)
	}
}

func TestSortSelfReferenceIsNotACycle(t *testing.T) {
	f := newFixture()
	// A signature may mention its own name without forcing an ordering.
	unit := ast.TranslationUnit{TopLevels: []ast.TopLevel{
		f.signatureFunc("A", "A"),
	}}
	order, err := Sort(unit)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if len(order) != 1 || order[0] != 0 {
		t.Errorf("got order %v, want [0]", order)
	}
}
