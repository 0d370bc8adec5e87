package ast

// Copy produces a fully independent duplicate of e: no slice and no
// child node is shared with the original.
func Copy(e Expr) Expr {
	switch e := e.(type) {
	case Lit, Ident:
		return e

	case BinOp:
		return BinOp{Op: e.Op, L: Copy(e.L), R: Copy(e.R)}

	case IfThenElse:
		return IfThenElse{
			Pred: Copy(e.Pred),
			Then: Copy(e.Then),
			Else: Copy(e.Else),
		}

	case FuncType:
		return FuncType{Ret: Copy(e.Ret), Params: copyParams(e.Params)}

	case Lambda:
		return Lambda{Params: copyParams(e.Params), Body: Copy(e.Body)}

	case Call:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Copy(a)
		}
		return Call{Func: Copy(e.Func), Args: args}

	case Struct:
		return Struct{Fields: copyParams(e.Fields)}

	case Union:
		return Union{Fields: copyParams(e.Fields)}

	case Pack:
		assigns := make([]Assign, len(e.Assigns))
		for i, a := range e.Assigns {
			assigns[i] = Assign{Name: a.Name, Value: Copy(a.Value)}
		}
		return Pack{Type: Copy(e.Type), Assigns: assigns}

	case Member:
		return Member{Record: Copy(e.Record), Field: e.Field}

	case Pointer:
		return Pointer{Inner: Copy(e.Inner)}

	case Reference:
		return Reference{Inner: Copy(e.Inner)}

	case Dereference:
		return Dereference{Inner: Copy(e.Inner)}
	}

	panic("ast: unknown expression variant")
}

func copyParams(params []Param) []Param {
	if params == nil {
		return nil
	}
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Type: Copy(p.Type), Name: p.Name}
	}
	return out
}

func CopyStatement(s Statement) Statement {
	switch s := s.(type) {
	case Empty:
		return s

	case ExprStatement:
		return ExprStatement{Expr: Copy(s.Expr)}

	case Return:
		return Return{Expr: Copy(s.Expr)}

	case Subblock:
		return Subblock{Body: CopyBlock(s.Body)}

	case Decl:
		d := Decl{Type: Copy(s.Type), Name: s.Name}
		if s.Value != nil {
			d.Value = Copy(s.Value)
		}
		return d

	case IfChain:
		conds := make([]Expr, len(s.Conds))
		thens := make([]Block, len(s.Thens))
		for i := range s.Conds {
			conds[i] = Copy(s.Conds[i])
			thens[i] = CopyBlock(s.Thens[i])
		}
		c := IfChain{Conds: conds, Thens: thens}
		if s.Else != nil {
			c.Else = CopyBlock(s.Else)
		}
		return c
	}

	panic("ast: unknown statement variant")
}

func CopyBlock(b Block) Block {
	if b == nil {
		return nil
	}
	out := make(Block, len(b))
	for i, s := range b {
		out[i] = CopyStatement(s)
	}
	return out
}

func CopyTopLevel(t TopLevel) TopLevel {
	switch t := t.(type) {
	case Func:
		return Func{
			Name:   t.Name,
			Ret:    Copy(t.Ret),
			Params: copyParams(t.Params),
			Body:   CopyBlock(t.Body),
		}
	}

	panic("ast: unknown top-level variant")
}

func literalEqual(x, y Literal) bool {
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case Integral:
		return x.Integral == y.Integral
	case Boolean:
		return x.Boolean == y.Boolean
	default:
		return true
	}
}

// Equal is strict structural equality. It does not account for alpha
// equivalence: two lambdas differing only in a bound name compare
// unequal. Semantic comparison of types goes through typecheck.Equal.
func Equal(x, y Expr) bool {
	switch x := x.(type) {
	case Lit:
		y, ok := y.(Lit)
		return ok && literalEqual(x.Literal, y.Literal)

	case Ident:
		y, ok := y.(Ident)
		return ok && x.Name == y.Name

	case BinOp:
		y, ok := y.(BinOp)
		return ok && x.Op == y.Op && Equal(x.L, y.L) && Equal(x.R, y.R)

	case IfThenElse:
		y, ok := y.(IfThenElse)
		return ok && Equal(x.Pred, y.Pred) &&
			Equal(x.Then, y.Then) && Equal(x.Else, y.Else)

	case FuncType:
		y, ok := y.(FuncType)
		return ok && Equal(x.Ret, y.Ret) && paramsEqual(x.Params, y.Params)

	case Lambda:
		y, ok := y.(Lambda)
		return ok && paramsEqual(x.Params, y.Params) && Equal(x.Body, y.Body)

	case Call:
		y, ok := y.(Call)
		if !ok || !Equal(x.Func, y.Func) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true

	case Struct:
		y, ok := y.(Struct)
		return ok && paramsEqual(x.Fields, y.Fields)

	case Union:
		y, ok := y.(Union)
		return ok && paramsEqual(x.Fields, y.Fields)

	case Pack:
		y, ok := y.(Pack)
		if !ok || !Equal(x.Type, y.Type) || len(x.Assigns) != len(y.Assigns) {
			return false
		}
		for i := range x.Assigns {
			if x.Assigns[i].Name != y.Assigns[i].Name ||
				!Equal(x.Assigns[i].Value, y.Assigns[i].Value) {
				return false
			}
		}
		return true

	case Member:
		y, ok := y.(Member)
		return ok && x.Field == y.Field && Equal(x.Record, y.Record)

	case Pointer:
		y, ok := y.(Pointer)
		return ok && Equal(x.Inner, y.Inner)

	case Reference:
		y, ok := y.(Reference)
		return ok && Equal(x.Inner, y.Inner)

	case Dereference:
		y, ok := y.(Dereference)
		return ok && Equal(x.Inner, y.Inner)
	}

	panic("ast: unknown expression variant")
}

func paramsEqual(x, y []Param) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].Name != y[i].Name || !Equal(x[i].Type, y[i].Type) {
			return false
		}
	}
	return true
}

func StatementEqual(x, y Statement) bool {
	switch x := x.(type) {
	case Empty:
		_, ok := y.(Empty)
		return ok

	case ExprStatement:
		y, ok := y.(ExprStatement)
		return ok && Equal(x.Expr, y.Expr)

	case Return:
		y, ok := y.(Return)
		return ok && Equal(x.Expr, y.Expr)

	case Subblock:
		y, ok := y.(Subblock)
		return ok && BlockEqual(x.Body, y.Body)

	case Decl:
		y, ok := y.(Decl)
		if !ok || x.Name != y.Name || !Equal(x.Type, y.Type) {
			return false
		}
		if (x.Value == nil) != (y.Value == nil) {
			return false
		}
		return x.Value == nil || Equal(x.Value, y.Value)

	case IfChain:
		y, ok := y.(IfChain)
		if !ok || len(x.Conds) != len(y.Conds) {
			return false
		}
		for i := range x.Conds {
			if !Equal(x.Conds[i], y.Conds[i]) ||
				!BlockEqual(x.Thens[i], y.Thens[i]) {
				return false
			}
		}
		return BlockEqual(x.Else, y.Else)
	}

	panic("ast: unknown statement variant")
}

func BlockEqual(x, y Block) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !StatementEqual(x[i], y[i]) {
			return false
		}
	}
	return true
}
