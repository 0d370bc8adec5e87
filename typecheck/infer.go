package typecheck

import (
	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/errors"
	"github.com/depc-lang/depc/symbols"
)

func typeLit() ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: ast.Type}}
}

func boolLit() ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: ast.Bool}}
}

func isIntegralType(e ast.Expr) bool {
	lit, ok := e.(ast.Lit)
	if !ok {
		return false
	}
	switch lit.Kind {
	case ast.U8, ast.S8, ast.U16, ast.S16, ast.U32, ast.S32, ast.U64, ast.S64:
		return true
	}
	return false
}

// Infer synthesizes the type of e under ctx.
func Infer(ctx *Context, e ast.Expr) (ast.Expr, error) {
	switch e := e.(type) {
	case ast.Lit:
		switch e.Kind {
		case ast.Integral:
			// Untyped integer constants default to the widest unsigned
			// type; Check lets them inhabit any sized integral type.
			return ast.Lit{Literal: ast.Literal{Kind: ast.U64}}, nil
		case ast.Boolean:
			return boolLit(), nil
		default:
			// Primitive type constants are types.
			return typeLit(), nil
		}

	case ast.Ident:
		typ, ok := ctx.Lookup(e.Name)
		if !ok {
			return nil, errors.UnboundName{Name: e.Name}
		}
		return typ, nil

	case ast.BinOp:
		return inferBinOp(ctx, e)

	case ast.IfThenElse:
		pt, err := Infer(ctx, e.Pred)
		if err != nil {
			return nil, err
		}
		if eq, err := Equal(ctx, pt, boolLit()); err != nil {
			return nil, err
		} else if !eq {
			return nil, errors.NotABool{Actual: pt, Node: e.Pred}
		}
		tt, err := Infer(ctx, e.Then)
		if err != nil {
			return nil, err
		}
		et, err := Infer(ctx, e.Else)
		if err != nil {
			return nil, err
		}
		if eq, err := Equal(ctx, tt, et); err != nil {
			return nil, err
		} else if !eq {
			return nil, errors.TypeMismatch{Expected: tt, Actual: et, Node: e.Else}
		}
		return tt, nil

	case ast.FuncType:
		ctx.Push()
		defer ctx.Pop()
		if err := checkTelescope(ctx, e.Params, e); err != nil {
			return nil, err
		}
		if err := Check(ctx, e.Ret, typeLit()); err != nil {
			return nil, err
		}
		return typeLit(), nil

	case ast.Lambda:
		ctx.Push()
		defer ctx.Pop()
		if err := checkTelescope(ctx, e.Params, e); err != nil {
			return nil, err
		}
		bodyType, err := Infer(ctx, e.Body)
		if err != nil {
			return nil, err
		}
		params := make([]ast.Param, len(e.Params))
		for i, p := range e.Params {
			params[i] = ast.Param{Type: ast.Copy(p.Type), Name: p.Name}
		}
		return ast.FuncType{Ret: bodyType, Params: params}, nil

	case ast.Call:
		return inferCall(ctx, e)

	case ast.Struct:
		ctx.Push()
		defer ctx.Pop()
		if err := checkTelescope(ctx, e.Fields, e); err != nil {
			return nil, err
		}
		return typeLit(), nil

	case ast.Union:
		// Alternatives do not see each other; no scope is pushed.
		seen := symbols.NewSet()
		for _, f := range e.Fields {
			if seen.Contains(f.Name) {
				return nil, errors.DuplicateField{Field: f.Name, Node: e}
			}
			seen.Add(f.Name)
			if err := Check(ctx, f.Type, typeLit()); err != nil {
				return nil, err
			}
		}
		return typeLit(), nil

	case ast.Pack:
		target, err := Eval(ctx, e.Type)
		if err != nil {
			return nil, err
		}
		if err := checkPackAgainst(ctx, e, target); err != nil {
			return nil, err
		}
		return ast.Copy(e.Type), nil

	case ast.Member:
		return inferMember(ctx, e)

	case ast.Pointer:
		// T* is a type whenever T is.
		if err := Check(ctx, e.Inner, typeLit()); err != nil {
			return nil, err
		}
		return typeLit(), nil

	case ast.Reference:
		t, err := Infer(ctx, e.Inner)
		if err != nil {
			return nil, err
		}
		return ast.Pointer{Inner: t}, nil

	case ast.Dereference:
		t, err := Infer(ctx, e.Inner)
		if err != nil {
			return nil, err
		}
		nt, err := Eval(ctx, t)
		if err != nil {
			return nil, err
		}
		ptr, ok := nt.(ast.Pointer)
		if !ok {
			return nil, errors.NotAPointerType{Type: nt, Node: e}
		}
		return ptr.Inner, nil
	}

	panic("typecheck: unknown expression variant")
}

// checkTelescope checks each entry's type against type, rejecting
// duplicate names and binding every name for the entries after it.
func checkTelescope(ctx *Context, entries []ast.Param, node ast.Expr) error {
	seen := symbols.NewSet()
	for _, p := range entries {
		if seen.Contains(p.Name) {
			return errors.DuplicateField{Field: p.Name, Node: node}
		}
		seen.Add(p.Name)
		if err := Check(ctx, p.Type, typeLit()); err != nil {
			return err
		}
		ctx.Bind(p.Name, p.Type)
	}
	return nil
}

func inferBinOp(ctx *Context, e ast.BinOp) (ast.Expr, error) {
	lt, err := Infer(ctx, e.L)
	if err != nil {
		return nil, err
	}
	rt, err := Infer(ctx, e.R)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAndThen:
		// Sequencing discards the left value; any type will do there.
		return rt, nil

	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if eq, err := Equal(ctx, lt, rt); err != nil {
			return nil, err
		} else if !eq {
			return nil, errors.TypeMismatch{Expected: lt, Actual: rt, Node: e.R}
		}
		if e.Op != ast.OpEq && e.Op != ast.OpNe {
			nt, err := Eval(ctx, lt)
			if err != nil {
				return nil, err
			}
			if !isIntegralType(nt) {
				return nil, errors.NotIntegral{Actual: nt, Node: e.L}
			}
		}
		return boolLit(), nil

	case ast.OpAdd, ast.OpSub:
		if eq, err := Equal(ctx, lt, rt); err != nil {
			return nil, err
		} else if !eq {
			return nil, errors.TypeMismatch{Expected: lt, Actual: rt, Node: e.R}
		}
		nt, err := Eval(ctx, lt)
		if err != nil {
			return nil, err
		}
		if !isIntegralType(nt) {
			return nil, errors.NotIntegral{Actual: nt, Node: e.L}
		}
		return lt, nil
	}

	panic("typecheck: unknown binary operator")
}

func inferCall(ctx *Context, e ast.Call) (ast.Expr, error) {
	ft, err := Infer(ctx, e.Func)
	if err != nil {
		return nil, err
	}
	nft, err := Eval(ctx, ft)
	if err != nil {
		return nil, err
	}
	fn, ok := nft.(ast.FuncType)
	if !ok {
		return nil, errors.NotAFunctionType{Type: nft, Node: e}
	}
	if len(fn.Params) != len(e.Args) {
		return nil, errors.ArityMismatch{Expected: len(fn.Params), Got: len(e.Args), Node: e}
	}

	// Dependent application: after each argument checks against its
	// parameter type, it is substituted into the remaining parameter
	// types and the return type.
	params := make([]ast.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = ast.Param{Type: ast.Copy(p.Type), Name: p.Name}
	}
	ret := ast.Copy(fn.Ret)

	for i, arg := range e.Args {
		if err := Check(ctx, arg, params[i].Type); err != nil {
			return nil, err
		}
		if !params[i].Name.Valid() {
			continue
		}
		for j := i + 1; j < len(params); j++ {
			if params[j].Type, err = ast.Subst(ctx.Symbols, params[j].Type, params[i].Name, arg); err != nil {
				return nil, err
			}
		}
		if ret, err = ast.Subst(ctx.Symbols, ret, params[i].Name, arg); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// checkPackAgainst checks a pack's assignments against an evaluated
// record type. A struct pack assigns every field exactly once in field
// order, with earlier assigned values substituted into later field
// types; a union pack assigns exactly one alternative.
func checkPackAgainst(ctx *Context, e ast.Pack, target ast.Expr) error {
	switch target := target.(type) {
	case ast.Struct:
		if len(e.Assigns) != len(target.Fields) {
			return errors.IncompleteOrExtraPackAssignment{Type: target, Node: e}
		}
		fields := make([]ast.Param, len(target.Fields))
		for i, f := range target.Fields {
			fields[i] = ast.Param{Type: ast.Copy(f.Type), Name: f.Name}
		}
		for i, a := range e.Assigns {
			if a.Name != fields[i].Name {
				return errors.IncompleteOrExtraPackAssignment{Type: target, Node: e}
			}
			if err := Check(ctx, a.Value, fields[i].Type); err != nil {
				return err
			}
			var err error
			for j := i + 1; j < len(fields); j++ {
				if fields[j].Type, err = ast.Subst(ctx.Symbols, fields[j].Type, fields[i].Name, a.Value); err != nil {
					return err
				}
			}
		}
		return nil

	case ast.Union:
		if len(e.Assigns) != 1 {
			return errors.IncompleteOrExtraPackAssignment{Type: target, Node: e}
		}
		a := e.Assigns[0]
		for _, f := range target.Fields {
			if f.Name == a.Name {
				return Check(ctx, a.Value, f.Type)
			}
		}
		return errors.UnknownField{Field: a.Name, Type: target}

	default:
		return errors.NotARecordType{Type: target, Node: e}
	}
}

func inferMember(ctx *Context, e ast.Member) (ast.Expr, error) {
	rt, err := Infer(ctx, e.Record)
	if err != nil {
		return nil, err
	}
	nrt, err := Eval(ctx, rt)
	if err != nil {
		return nil, err
	}

	var fields []ast.Param
	dependent := false
	switch nrt := nrt.(type) {
	case ast.Struct:
		fields = nrt.Fields
		dependent = true
	case ast.Union:
		fields = nrt.Fields
	default:
		return nil, errors.NotARecordType{Type: nrt, Node: e}
	}

	for k, f := range fields {
		if f.Name != e.Field {
			continue
		}
		result := ast.Copy(f.Type)
		if !dependent {
			return result, nil
		}
		// Dependent projection: earlier fields of the telescope are
		// replaced by their projections out of the same record, so
		// r.v : r.T rather than the bare field name T.
		for j := 0; j < k; j++ {
			projection := ast.Member{Record: ast.Copy(e.Record), Field: fields[j].Name}
			if result, err = ast.Subst(ctx.Symbols, result, fields[j].Name, projection); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	return nil, errors.UnknownField{Field: e.Field, Type: nrt}
}

// Check verifies that e has type want. Lambdas and packs are checked
// structurally against the expected type; everything else infers and
// compares with Equal.
func Check(ctx *Context, e ast.Expr, want ast.Expr) error {
	switch e := e.(type) {
	case ast.Lambda:
		nw, err := Eval(ctx, want)
		if err != nil {
			return err
		}
		if ft, ok := nw.(ast.FuncType); ok {
			return checkLambda(ctx, e, ft)
		}

	case ast.Pack:
		eq, err := Equal(ctx, e.Type, want)
		if err != nil {
			return err
		}
		if !eq {
			return errors.TypeMismatch{Expected: want, Actual: e.Type, Node: e}
		}
		nw, err := Eval(ctx, want)
		if err != nil {
			return err
		}
		return checkPackAgainst(ctx, e, nw)

	case ast.Lit:
		// An integer constant inhabits every sized integral type.
		if e.Kind == ast.Integral {
			nw, err := Eval(ctx, want)
			if err != nil {
				return err
			}
			if isIntegralType(nw) {
				return nil
			}
		}
	}

	it, err := Infer(ctx, e)
	if err != nil {
		return err
	}
	eq, err := Equal(ctx, it, want)
	if err != nil {
		return err
	}
	if !eq {
		return errors.TypeMismatch{Expected: want, Actual: it, Node: e}
	}
	return nil
}

// checkLambda checks a lambda against an expected function type without
// inferring the body on its own: the expected parameter types drive the
// check, which is what makes dependent return types and mismatched
// binder names work.
func checkLambda(ctx *Context, lam ast.Lambda, ft ast.FuncType) error {
	if len(lam.Params) != len(ft.Params) {
		return errors.ArityMismatch{Expected: len(ft.Params), Got: len(lam.Params), Node: lam}
	}

	params := make([]ast.Param, len(ft.Params))
	for i, p := range ft.Params {
		params[i] = ast.Param{Type: ast.Copy(p.Type), Name: p.Name}
	}
	ret := ast.Copy(ft.Ret)

	ctx.Push()
	defer ctx.Pop()

	for i, p := range lam.Params {
		eq, err := Equal(ctx, p.Type, params[i].Type)
		if err != nil {
			return err
		}
		if !eq {
			return errors.TypeMismatch{Expected: params[i].Type, Actual: p.Type, Node: lam}
		}
		ctx.Bind(p.Name, params[i].Type)

		// Rebase the expected type's binder onto the lambda's own
		// parameter name so a dependent return type follows along.
		if params[i].Name.Valid() && params[i].Name != p.Name {
			repl := ast.Ident{Name: p.Name}
			for j := i + 1; j < len(params); j++ {
				if params[j].Type, err = ast.Subst(ctx.Symbols, params[j].Type, params[i].Name, repl); err != nil {
					return err
				}
			}
			if ret, err = ast.Subst(ctx.Symbols, ret, params[i].Name, repl); err != nil {
				return err
			}
		}
	}

	return Check(ctx, lam.Body, ret)
}
