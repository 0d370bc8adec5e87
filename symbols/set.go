package symbols

// Set is a set of interned names.
type Set map[Symbol]struct{}

func NewSet(syms ...Symbol) Set {
	s := Set{}
	for _, sym := range syms {
		s.Add(sym)
	}
	return s
}

func (s Set) Add(sym Symbol) {
	if sym.Valid() {
		s[sym] = struct{}{}
	}
}

func (s Set) Delete(sym Symbol) {
	delete(s, sym)
}

func (s Set) Contains(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Union adds every element of other to s.
func (s Set) Union(other Set) {
	for sym := range other {
		s[sym] = struct{}{}
	}
}
