package typecheck

import (
	"github.com/depc-lang/depc/ast"
)

// Eval reduces e to normal form. The reduction rules are beta-reduction
// of calls to lambdas, projection out of packs, conditionals over
// boolean literals, and constant folding of operators over literals.
// Anything else normalizes its children and is stuck.
//
// Termination on well-typed terms is inherited from the typing
// discipline; Eval itself does not guard against divergence.
func Eval(ctx *Context, e ast.Expr) (ast.Expr, error) {
	switch e := e.(type) {
	case ast.Lit, ast.Ident:
		return e, nil

	case ast.BinOp:
		return evalBinOp(ctx, e)

	case ast.IfThenElse:
		pred, err := Eval(ctx, e.Pred)
		if err != nil {
			return nil, err
		}
		if lit, ok := pred.(ast.Lit); ok && lit.Kind == ast.Boolean {
			if lit.Boolean {
				return Eval(ctx, e.Then)
			}
			return Eval(ctx, e.Else)
		}
		then, err := Eval(ctx, e.Then)
		if err != nil {
			return nil, err
		}
		els, err := Eval(ctx, e.Else)
		if err != nil {
			return nil, err
		}
		return ast.IfThenElse{Pred: pred, Then: then, Else: els}, nil

	case ast.FuncType:
		params, err := evalParams(ctx, e.Params)
		if err != nil {
			return nil, err
		}
		ret, err := Eval(ctx, e.Ret)
		if err != nil {
			return nil, err
		}
		return ast.FuncType{Ret: ret, Params: params}, nil

	case ast.Lambda:
		params, err := evalParams(ctx, e.Params)
		if err != nil {
			return nil, err
		}
		body, err := Eval(ctx, e.Body)
		if err != nil {
			return nil, err
		}
		return ast.Lambda{Params: params, Body: body}, nil

	case ast.Call:
		return evalCall(ctx, e)

	case ast.Struct:
		fields, err := evalParams(ctx, e.Fields)
		if err != nil {
			return nil, err
		}
		return ast.Struct{Fields: fields}, nil

	case ast.Union:
		fields, err := evalParams(ctx, e.Fields)
		if err != nil {
			return nil, err
		}
		return ast.Union{Fields: fields}, nil

	case ast.Pack:
		typ, err := Eval(ctx, e.Type)
		if err != nil {
			return nil, err
		}
		assigns := make([]ast.Assign, len(e.Assigns))
		for i, a := range e.Assigns {
			v, err := Eval(ctx, a.Value)
			if err != nil {
				return nil, err
			}
			assigns[i] = ast.Assign{Name: a.Name, Value: v}
		}
		return ast.Pack{Type: typ, Assigns: assigns}, nil

	case ast.Member:
		record, err := Eval(ctx, e.Record)
		if err != nil {
			return nil, err
		}
		if pack, ok := record.(ast.Pack); ok {
			for _, a := range pack.Assigns {
				if a.Name == e.Field {
					return ast.Copy(a.Value), nil
				}
			}
			// A union pack projected at a different alternative is a
			// checker-time error; here it is merely stuck.
		}
		return ast.Member{Record: record, Field: e.Field}, nil

	case ast.Pointer:
		inner, err := Eval(ctx, e.Inner)
		if err != nil {
			return nil, err
		}
		return ast.Pointer{Inner: inner}, nil

	case ast.Reference:
		inner, err := Eval(ctx, e.Inner)
		if err != nil {
			return nil, err
		}
		return ast.Reference{Inner: inner}, nil

	case ast.Dereference:
		inner, err := Eval(ctx, e.Inner)
		if err != nil {
			return nil, err
		}
		return ast.Dereference{Inner: inner}, nil
	}

	panic("typecheck: unknown expression variant")
}

func evalParams(ctx *Context, params []ast.Param) ([]ast.Param, error) {
	out := make([]ast.Param, len(params))
	for i, p := range params {
		t, err := Eval(ctx, p.Type)
		if err != nil {
			return nil, err
		}
		out[i] = ast.Param{Type: t, Name: p.Name}
	}
	return out, nil
}

func evalCall(ctx *Context, e ast.Call) (ast.Expr, error) {
	fn, err := Eval(ctx, e.Func)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expr, len(e.Args))
	for i, a := range e.Args {
		if args[i], err = Eval(ctx, a); err != nil {
			return nil, err
		}
	}

	lambda, ok := fn.(ast.Lambda)
	if !ok || len(lambda.Params) != len(args) {
		return ast.Call{Func: fn, Args: args}, nil
	}

	// Beta-reduce: substitute each argument for its parameter, left to
	// right. Parameter types are irrelevant at the call site.
	body := ast.Copy(lambda.Body)
	for i, p := range lambda.Params {
		if body, err = ast.Subst(ctx.Symbols, body, p.Name, args[i]); err != nil {
			return nil, err
		}
	}
	return Eval(ctx, body)
}

// isTypeConstant reports whether k names a primitive type rather than
// an integer or boolean value.
func isTypeConstant(k ast.LiteralKind) bool {
	return k != ast.Integral && k != ast.Boolean
}

func isIntegralLit(e ast.Expr) (uint64, bool) {
	lit, ok := e.(ast.Lit)
	if !ok || lit.Kind != ast.Integral {
		return 0, false
	}
	return lit.Integral, true
}

func booleanLit(v bool) ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: ast.Boolean, Boolean: v}}
}

func integralLit(v uint64) ast.Expr {
	return ast.Lit{Literal: ast.Literal{Kind: ast.Integral, Integral: v}}
}

func evalBinOp(ctx *Context, e ast.BinOp) (ast.Expr, error) {
	l, err := Eval(ctx, e.L)
	if err != nil {
		return nil, err
	}
	r, err := Eval(ctx, e.R)
	if err != nil {
		return nil, err
	}

	stuck := ast.BinOp{Op: e.Op, L: l, R: r}

	switch e.Op {
	case ast.OpAndThen:
		// Sequencing: once the left side is a value it is discarded.
		if _, ok := l.(ast.Lit); ok {
			return r, nil
		}
		return stuck, nil

	case ast.OpEq, ast.OpNe:
		ll, lok := l.(ast.Lit)
		rl, rok := r.(ast.Lit)
		if !lok || !rok {
			return stuck, nil
		}
		var equal bool
		switch {
		case isTypeConstant(ll.Kind) && isTypeConstant(rl.Kind):
			// Primitive type constants are all values of type; two of
			// them compare by which type they name.
			equal = ll.Kind == rl.Kind
		case ll.Kind == rl.Kind:
			equal = ll.Literal == rl.Literal
		default:
			return stuck, nil
		}
		if e.Op == ast.OpNe {
			equal = !equal
		}
		return booleanLit(equal), nil

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		lv, lok := isIntegralLit(l)
		rv, rok := isIntegralLit(r)
		if !lok || !rok {
			return stuck, nil
		}
		switch e.Op {
		case ast.OpLt:
			return booleanLit(lv < rv), nil
		case ast.OpLe:
			return booleanLit(lv <= rv), nil
		case ast.OpGt:
			return booleanLit(lv > rv), nil
		default:
			return booleanLit(lv >= rv), nil
		}

	case ast.OpAdd, ast.OpSub:
		lv, lok := isIntegralLit(l)
		rv, rok := isIntegralLit(r)
		if !lok || !rok {
			return stuck, nil
		}
		if e.Op == ast.OpAdd {
			return integralLit(lv + rv), nil
		}
		return integralLit(lv - rv), nil
	}

	return stuck, nil
}
