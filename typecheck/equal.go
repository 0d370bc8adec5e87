package typecheck

import (
	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/symbols"
)

// Equal decides whether t1 and t2 denote the same type: both are
// reduced to normal form, then compared up to a consistent renaming of
// bound names. This, not ast.Equal, is the comparison the checker uses.
func Equal(ctx *Context, t1, t2 ast.Expr) (bool, error) {
	n1, err := Eval(ctx, t1)
	if err != nil {
		return false, err
	}
	n2, err := Eval(ctx, t2)
	if err != nil {
		return false, err
	}
	return alphaEqual(ctx, n1, n2)
}

// alphaEqual compares two normal forms. At each pair of binders the two
// bound names are rewritten to one shared fresh placeholder before the
// remaining scope is compared, so bound-name identity never leaks into
// the result.
func alphaEqual(ctx *Context, x, y ast.Expr) (bool, error) {
	switch x := x.(type) {
	case ast.Lit, ast.Ident:
		return ast.Equal(x, y), nil

	case ast.BinOp:
		y, ok := y.(ast.BinOp)
		if !ok || x.Op != y.Op {
			return false, nil
		}
		return alphaEqualAll(ctx, []ast.Expr{x.L, x.R}, []ast.Expr{y.L, y.R})

	case ast.IfThenElse:
		y, ok := y.(ast.IfThenElse)
		if !ok {
			return false, nil
		}
		return alphaEqualAll(ctx,
			[]ast.Expr{x.Pred, x.Then, x.Else},
			[]ast.Expr{y.Pred, y.Then, y.Else})

	case ast.FuncType:
		y, ok := y.(ast.FuncType)
		if !ok {
			return false, nil
		}
		return alphaEqualTelescope(ctx, x.Params, x.Ret, y.Params, y.Ret, false)

	case ast.Lambda:
		y, ok := y.(ast.Lambda)
		if !ok {
			return false, nil
		}
		return alphaEqualTelescope(ctx, x.Params, x.Body, y.Params, y.Body, false)

	case ast.Call:
		y, ok := y.(ast.Call)
		if !ok || len(x.Args) != len(y.Args) {
			return false, nil
		}
		if eq, err := alphaEqual(ctx, x.Func, y.Func); err != nil || !eq {
			return false, err
		}
		return alphaEqualAll(ctx, x.Args, y.Args)

	case ast.Struct:
		y, ok := y.(ast.Struct)
		if !ok {
			return false, nil
		}
		return alphaEqualTelescope(ctx, x.Fields, nil, y.Fields, nil, false)

	case ast.Union:
		// Union alternatives are not binders; their names are part of
		// the type.
		y, ok := y.(ast.Union)
		if !ok {
			return false, nil
		}
		return alphaEqualTelescope(ctx, x.Fields, nil, y.Fields, nil, true)

	case ast.Pack:
		y, ok := y.(ast.Pack)
		if !ok || len(x.Assigns) != len(y.Assigns) {
			return false, nil
		}
		if eq, err := alphaEqual(ctx, x.Type, y.Type); err != nil || !eq {
			return false, err
		}
		for i := range x.Assigns {
			if x.Assigns[i].Name != y.Assigns[i].Name {
				return false, nil
			}
			eq, err := alphaEqual(ctx, x.Assigns[i].Value, y.Assigns[i].Value)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil

	case ast.Member:
		y, ok := y.(ast.Member)
		if !ok || x.Field != y.Field {
			return false, nil
		}
		return alphaEqual(ctx, x.Record, y.Record)

	case ast.Pointer:
		y, ok := y.(ast.Pointer)
		if !ok {
			return false, nil
		}
		return alphaEqual(ctx, x.Inner, y.Inner)

	case ast.Reference:
		y, ok := y.(ast.Reference)
		if !ok {
			return false, nil
		}
		return alphaEqual(ctx, x.Inner, y.Inner)

	case ast.Dereference:
		y, ok := y.(ast.Dereference)
		if !ok {
			return false, nil
		}
		return alphaEqual(ctx, x.Inner, y.Inner)
	}

	panic("typecheck: unknown expression variant")
}

func alphaEqualAll(ctx *Context, xs, ys []ast.Expr) (bool, error) {
	if len(xs) != len(ys) {
		return false, nil
	}
	for i := range xs {
		eq, err := alphaEqual(ctx, xs[i], ys[i])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// alphaEqualTelescope compares two parameter/field telescopes and their
// optional tails (return type or body). With strictNames set the entry
// names must match exactly and bind nothing (unions); otherwise each
// pair of binders is renamed to a shared placeholder.
func alphaEqualTelescope(ctx *Context, xParams []ast.Param, xTail ast.Expr, yParams []ast.Param, yTail ast.Expr, strictNames bool) (bool, error) {
	if len(xParams) != len(yParams) {
		return false, nil
	}

	xs := copyTelescope(xParams, xTail)
	ys := copyTelescope(yParams, yTail)

	for i := range xs.params {
		eq, err := alphaEqual(ctx, xs.params[i].Type, ys.params[i].Type)
		if err != nil || !eq {
			return false, err
		}

		if strictNames {
			if xs.params[i].Name != ys.params[i].Name {
				return false, nil
			}
			continue
		}

		xn := xs.params[i].Name
		yn := ys.params[i].Name
		if !xn.Valid() && !yn.Valid() {
			continue
		}
		base := xn
		if !base.Valid() {
			base = yn
		}
		placeholder := ctx.Symbols.Gensym(base)
		if err := xs.rename(ctx, i, placeholder); err != nil {
			return false, err
		}
		if err := ys.rename(ctx, i, placeholder); err != nil {
			return false, err
		}
	}

	if xs.tail == nil {
		return ys.tail == nil, nil
	}
	return alphaEqual(ctx, xs.tail, ys.tail)
}

type telescope struct {
	params []ast.Param
	tail   ast.Expr
}

func copyTelescope(params []ast.Param, tail ast.Expr) *telescope {
	t := &telescope{params: make([]ast.Param, len(params))}
	for i, p := range params {
		t.params[i] = ast.Param{Type: ast.Copy(p.Type), Name: p.Name}
	}
	if tail != nil {
		t.tail = ast.Copy(tail)
	}
	return t
}

// rename rewrites the binder at position i to the placeholder
// throughout the rest of its scope.
func (t *telescope) rename(ctx *Context, i int, placeholder symbols.Symbol) error {
	old := t.params[i].Name
	if !old.Valid() {
		return nil
	}
	t.params[i].Name = placeholder
	repl := ast.Ident{Name: placeholder}

	var err error
	for j := i + 1; j < len(t.params); j++ {
		if t.params[j].Type, err = ast.Subst(ctx.Symbols, t.params[j].Type, old, repl); err != nil {
			return err
		}
	}
	if t.tail != nil {
		if t.tail, err = ast.Subst(ctx.Symbols, t.tail, old, repl); err != nil {
			return err
		}
	}
	return nil
}
