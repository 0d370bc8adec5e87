// Package symbols interns identifiers into comparable handles and mints
// fresh names for capture-avoiding renames. The table only grows; handles
// stay valid for the whole compilation run.
package symbols

import "fmt"

// Symbol is an interned name. The zero Symbol means "no name" (unnamed
// function type parameters). Symbols from the same Table compare equal
// exactly when their text is equal.
type Symbol struct {
	text *string
}

// None is the absent name.
var None = Symbol{}

func (s Symbol) Valid() bool {
	return s.text != nil
}

func (s Symbol) String() string {
	if s.text == nil {
		return "_"
	}
	return *s.text
}

type Table struct {
	interned map[string]Symbol
	counter  uint64
}

func NewTable() *Table {
	return &Table{interned: map[string]Symbol{}}
}

// Intern returns the canonical handle for text, creating it on first use.
func (t *Table) Intern(text string) Symbol {
	if s, ok := t.interned[text]; ok {
		return s
	}
	owned := text
	s := Symbol{text: &owned}
	t.interned[text] = s
	return s
}

// Gensym returns a name distinct from every name interned or generated so
// far, derived from base's display text.
func (t *Table) Gensym(base Symbol) Symbol {
	for {
		t.counter++
		text := fmt.Sprintf("%s$%d", base, t.counter)
		if _, ok := t.interned[text]; !ok {
			return t.Intern(text)
		}
	}
}
