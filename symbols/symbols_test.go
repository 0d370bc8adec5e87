package symbols

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("foo")
	b := tbl.Intern("foo")
	if a != b {
		t.Errorf("interning foo twice gave distinct handles")
	}
	if a == tbl.Intern("bar") {
		t.Errorf("foo and bar intern to the same handle")
	}
}

func TestGensymIsFresh(t *testing.T) {
	tbl := NewTable()
	base := tbl.Intern("x")
	seen := NewSet(base)
	for i := 0; i < 100; i++ {
		fresh := tbl.Gensym(base)
		if seen.Contains(fresh) {
			t.Fatalf("gensym returned %s twice", fresh)
		}
		seen.Add(fresh)
	}
}

func TestGensymSkipsInternedNames(t *testing.T) {
	tbl := NewTable()
	base := tbl.Intern("x")
	taken := tbl.Intern("x$1")
	fresh := tbl.Gensym(base)
	if fresh == taken {
		t.Errorf("gensym collided with already-interned %s", taken)
	}
}

func TestNoneIsInvalid(t *testing.T) {
	if None.Valid() {
		t.Errorf("zero Symbol reports Valid")
	}
	s := NewSet()
	s.Add(None)
	if len(s) != 0 {
		t.Errorf("None was added to a set")
	}
}
