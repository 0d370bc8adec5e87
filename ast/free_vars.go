package ast

import (
	"github.com/depc-lang/depc/symbols"
)

// FreeVars returns the set of names occurring free in e.
//
// Binding constructs: a FuncType or Lambda parameter is in scope for all
// later parameter types and for the return type / body; a struct field
// is in scope for all later field types. Union alternatives and pack
// assignments bind nothing.
func FreeVars(e Expr) symbols.Set {
	free := symbols.NewSet()

	switch e := e.(type) {
	case Lit:

	case Ident:
		free.Add(e.Name)

	case BinOp:
		free.Union(FreeVars(e.L))
		free.Union(FreeVars(e.R))

	case IfThenElse:
		free.Union(FreeVars(e.Pred))
		free.Union(FreeVars(e.Then))
		free.Union(FreeVars(e.Else))

	case FuncType:
		free = telescopeFreeVars(e.Params, e.Ret)

	case Lambda:
		free = telescopeFreeVars(e.Params, e.Body)

	case Call:
		free.Union(FreeVars(e.Func))
		for _, a := range e.Args {
			free.Union(FreeVars(a))
		}

	case Struct:
		free = telescopeFreeVars(e.Fields, nil)

	case Union:
		for _, f := range e.Fields {
			free.Union(FreeVars(f.Type))
		}

	case Pack:
		free.Union(FreeVars(e.Type))
		for _, a := range e.Assigns {
			free.Union(FreeVars(a.Value))
		}

	case Member:
		free.Union(FreeVars(e.Record))

	case Pointer:
		free.Union(FreeVars(e.Inner))

	case Reference:
		free.Union(FreeVars(e.Inner))

	case Dereference:
		free.Union(FreeVars(e.Inner))

	default:
		panic("ast: unknown expression variant")
	}

	return free
}

// telescopeFreeVars handles the shared scoping of parameter lists and
// struct field lists. Entry i's type sees entries 0..i-1 as bound; tail
// (return type or body, may be nil) sees every entry as bound.
func telescopeFreeVars(entries []Param, tail Expr) symbols.Set {
	free := symbols.NewSet()

	if tail != nil {
		free = FreeVars(tail)
		for _, p := range entries {
			free.Delete(p.Name)
		}
	}

	for i, p := range entries {
		entry := FreeVars(p.Type)
		for _, earlier := range entries[:i] {
			entry.Delete(earlier.Name)
		}
		free.Union(entry)
	}

	return free
}

func StatementFreeVars(s Statement) symbols.Set {
	free := symbols.NewSet()

	switch s := s.(type) {
	case Empty:

	case ExprStatement:
		free.Union(FreeVars(s.Expr))

	case Return:
		free.Union(FreeVars(s.Expr))

	case Subblock:
		free.Union(BlockFreeVars(s.Body))

	case Decl:
		free.Union(FreeVars(s.Type))
		if s.Value != nil {
			free.Union(FreeVars(s.Value))
		}

	case IfChain:
		for i := range s.Conds {
			free.Union(FreeVars(s.Conds[i]))
			free.Union(BlockFreeVars(s.Thens[i]))
		}
		free.Union(BlockFreeVars(s.Else))

	default:
		panic("ast: unknown statement variant")
	}

	return free
}

// BlockFreeVars walks the block in reverse so that a declaration's name
// is bound exactly for the statements that follow it.
func BlockFreeVars(b Block) symbols.Set {
	free := symbols.NewSet()

	for i := len(b) - 1; i >= 0; i-- {
		if decl, ok := b[i].(Decl); ok {
			free.Delete(decl.Name)
		}
		free.Union(StatementFreeVars(b[i]))
	}

	return free
}
