package typecheck

import (
	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/errors"
)

// Checking a declaration has two phases. CheckSignature validates the
// return and parameter types and binds the signature in the current
// scope; CheckBody checks the body with every bound signature visible,
// its own included. Bodies may therefore be self or mutually recursive:
// a driver checks all signatures in dependency order first, then all
// bodies.

// CheckSignature checks a declaration's signature against type and, on
// success, binds it in the current scope.
func CheckSignature(ctx *Context, top ast.TopLevel) error {
	switch f := top.(type) {
	case ast.Func:
		if err := checkFuncSignature(ctx, f); err != nil {
			return err
		}
		ctx.Bind(f.Name, f.Signature())
		return nil
	}

	panic("typecheck: unknown top-level variant")
}

func checkFuncSignature(ctx *Context, f ast.Func) error {
	ctx.Push()
	defer ctx.Pop()

	if err := checkTelescope(ctx, f.Params, f.Signature()); err != nil {
		return err
	}
	return Check(ctx, f.Ret, typeLit())
}

// CheckBody checks a declaration's body. The declaration's own
// signature must already be bound (CheckSignature), so recursive calls
// resolve.
func CheckBody(ctx *Context, top ast.TopLevel) error {
	switch f := top.(type) {
	case ast.Func:
		ctx.Push()
		defer ctx.Pop()

		// The parameter telescope was validated with the signature;
		// here the names are just rebound for the body.
		for _, p := range f.Params {
			ctx.Bind(p.Name, p.Type)
		}
		return checkBlock(ctx, f.Body, f.Ret)
	}

	panic("typecheck: unknown top-level variant")
}

// CheckTopLevel checks one declaration in isolation: its signature,
// then its body. The signature stays bound even when the body fails;
// later declarations check against it either way.
func CheckTopLevel(ctx *Context, top ast.TopLevel) error {
	if err := CheckSignature(ctx, top); err != nil {
		return err
	}
	return CheckBody(ctx, top)
}

// checkBlock checks the statements of a block in a nested scope. ret is
// the type return statements must produce.
func checkBlock(ctx *Context, b ast.Block, ret ast.Expr) error {
	ctx.Push()
	defer ctx.Pop()

	for _, st := range b {
		if err := checkStatement(ctx, st, ret); err != nil {
			return err
		}
	}
	return nil
}

func checkStatement(ctx *Context, st ast.Statement, ret ast.Expr) error {
	switch st := st.(type) {
	case ast.Empty:
		return nil

	case ast.ExprStatement:
		_, err := Infer(ctx, st.Expr)
		return err

	case ast.Return:
		return Check(ctx, st.Expr, ret)

	case ast.Subblock:
		return checkBlock(ctx, st.Body, ret)

	case ast.Decl:
		if err := Check(ctx, st.Type, typeLit()); err != nil {
			return err
		}
		if st.Value != nil {
			if err := Check(ctx, st.Value, st.Type); err != nil {
				return err
			}
		}
		ctx.Bind(st.Name, st.Type)
		return nil

	case ast.IfChain:
		for i := range st.Conds {
			pt, err := Infer(ctx, st.Conds[i])
			if err != nil {
				return err
			}
			if eq, err := Equal(ctx, pt, boolLit()); err != nil {
				return err
			} else if !eq {
				return errors.NotABool{Actual: pt, Node: st.Conds[i]}
			}
			if err := checkBlock(ctx, st.Thens[i], ret); err != nil {
				return err
			}
		}
		if st.Else != nil {
			return checkBlock(ctx, st.Else, ret)
		}
		return nil
	}

	panic("typecheck: unknown statement variant")
}
