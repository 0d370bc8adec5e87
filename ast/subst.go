package ast

import (
	"fmt"

	"github.com/depc-lang/depc/symbols"
)

// CannotRenameField reports that substitution would capture a free
// variable of the replacement under a struct field binder. Unlike
// function parameters, struct fields are also projection labels, so
// renaming one would change the type; the substitution fails instead.
type CannotRenameField struct {
	Field symbols.Symbol
}

func (e CannotRenameField) Error() string {
	return fmt.Sprintf("cannot substitute: struct field %s would capture a free variable of the replacement", e.Field)
}

// Subst replaces every free occurrence of name in e by a copy of
// replacement, renaming bound names through tbl.Gensym where they would
// capture a free variable of replacement. The input trees are not
// modified; the result shares no storage with e or replacement.
func Subst(tbl *symbols.Table, e Expr, name symbols.Symbol, replacement Expr) (Expr, error) {
	return subster{tbl: tbl}.expr(e, name, replacement)
}

type subster struct {
	tbl *symbols.Table
}

func (s subster) expr(e Expr, name symbols.Symbol, replacement Expr) (Expr, error) {
	switch e := e.(type) {
	case Lit:
		return e, nil

	case Ident:
		// Only an occurrence of the substituted name is replaced.
		// Unrelated identifiers must survive untouched.
		if e.Name == name {
			return Copy(replacement), nil
		}
		return e, nil

	case BinOp:
		l, err := s.expr(e.L, name, replacement)
		if err != nil {
			return nil, err
		}
		r, err := s.expr(e.R, name, replacement)
		if err != nil {
			return nil, err
		}
		return BinOp{Op: e.Op, L: l, R: r}, nil

	case IfThenElse:
		pred, err := s.expr(e.Pred, name, replacement)
		if err != nil {
			return nil, err
		}
		then, err := s.expr(e.Then, name, replacement)
		if err != nil {
			return nil, err
		}
		els, err := s.expr(e.Else, name, replacement)
		if err != nil {
			return nil, err
		}
		return IfThenElse{Pred: pred, Then: then, Else: els}, nil

	case FuncType:
		params, tail, err := s.telescope(e.Params, e.Ret, name, replacement)
		if err != nil {
			return nil, err
		}
		return FuncType{Ret: tail, Params: params}, nil

	case Lambda:
		params, tail, err := s.telescope(e.Params, e.Body, name, replacement)
		if err != nil {
			return nil, err
		}
		return Lambda{Params: params, Body: tail}, nil

	case Call:
		fn, err := s.expr(e.Func, name, replacement)
		if err != nil {
			return nil, err
		}
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			if args[i], err = s.expr(a, name, replacement); err != nil {
				return nil, err
			}
		}
		return Call{Func: fn, Args: args}, nil

	case Struct:
		fields, err := s.structFields(e.Fields, name, replacement)
		if err != nil {
			return nil, err
		}
		return Struct{Fields: fields}, nil

	case Union:
		// Union alternatives bind nothing; substitute independently.
		fields := make([]Param, len(e.Fields))
		for i, f := range e.Fields {
			t, err := s.expr(f.Type, name, replacement)
			if err != nil {
				return nil, err
			}
			fields[i] = Param{Type: t, Name: f.Name}
		}
		return Union{Fields: fields}, nil

	case Pack:
		// Pack field names are selectors, not binders: nothing can be
		// captured, so the type and every assigned value are
		// substituted unconditionally.
		typ, err := s.expr(e.Type, name, replacement)
		if err != nil {
			return nil, err
		}
		assigns := make([]Assign, len(e.Assigns))
		for i, a := range e.Assigns {
			v, err := s.expr(a.Value, name, replacement)
			if err != nil {
				return nil, err
			}
			assigns[i] = Assign{Name: a.Name, Value: v}
		}
		return Pack{Type: typ, Assigns: assigns}, nil

	case Member:
		record, err := s.expr(e.Record, name, replacement)
		if err != nil {
			return nil, err
		}
		return Member{Record: record, Field: e.Field}, nil

	case Pointer:
		inner, err := s.expr(e.Inner, name, replacement)
		if err != nil {
			return nil, err
		}
		return Pointer{Inner: inner}, nil

	case Reference:
		inner, err := s.expr(e.Inner, name, replacement)
		if err != nil {
			return nil, err
		}
		return Reference{Inner: inner}, nil

	case Dereference:
		inner, err := s.expr(e.Inner, name, replacement)
		if err != nil {
			return nil, err
		}
		return Dereference{Inner: inner}, nil
	}

	panic("ast: unknown expression variant")
}

// telescope substitutes through a parameter telescope and its tail (the
// return type of a function type, or a lambda body). Binders are walked
// left to right: a binder equal to the substituted name shadows it and
// stops the substitution; a binder that is free in the replacement is
// renamed to a gensym throughout the rest of its scope first.
func (s subster) telescope(params []Param, tail Expr, name symbols.Symbol, replacement Expr) ([]Param, Expr, error) {
	free := FreeVars(replacement)
	out := copyParams(params)
	outTail := Copy(tail)

	for i := range out {
		// The parameter's own type is outside the binder's scope.
		t, err := s.expr(out[i].Type, name, replacement)
		if err != nil {
			return nil, nil, err
		}
		out[i].Type = t

		n := out[i].Name
		if !n.Valid() {
			continue
		}
		if n == name {
			// Shadowed from here on.
			return out, outTail, nil
		}
		if free.Contains(n) {
			fresh := s.tbl.Gensym(n)
			renamed := Ident{Name: fresh}
			out[i].Name = fresh
			for j := i + 1; j < len(out); j++ {
				if out[j].Type, err = s.expr(out[j].Type, n, renamed); err != nil {
					return nil, nil, err
				}
			}
			if outTail, err = s.expr(outTail, n, renamed); err != nil {
				return nil, nil, err
			}
		}
	}

	t, err := s.expr(outTail, name, replacement)
	if err != nil {
		return nil, nil, err
	}
	return out, t, nil
}

// structFields substitutes through a struct telescope. Field names bind
// later field types but cannot be renamed, so a capture risk is an
// error rather than a gensym.
func (s subster) structFields(fields []Param, name symbols.Symbol, replacement Expr) ([]Param, error) {
	free := FreeVars(replacement)
	out := copyParams(fields)

	for i := range out {
		t, err := s.expr(out[i].Type, name, replacement)
		if err != nil {
			return nil, err
		}
		out[i].Type = t

		if out[i].Name == name {
			return out, nil
		}
		if free.Contains(out[i].Name) {
			return nil, CannotRenameField{Field: out[i].Name}
		}
	}

	return out, nil
}

func SubstStatement(tbl *symbols.Table, st Statement, name symbols.Symbol, replacement Expr) (Statement, error) {
	return subster{tbl: tbl}.statement(st, name, replacement)
}

func (s subster) statement(st Statement, name symbols.Symbol, replacement Expr) (Statement, error) {
	switch st := st.(type) {
	case Empty:
		return st, nil

	case ExprStatement:
		e, err := s.expr(st.Expr, name, replacement)
		if err != nil {
			return nil, err
		}
		return ExprStatement{Expr: e}, nil

	case Return:
		e, err := s.expr(st.Expr, name, replacement)
		if err != nil {
			return nil, err
		}
		return Return{Expr: e}, nil

	case Subblock:
		b, err := s.block(st.Body, name, replacement)
		if err != nil {
			return nil, err
		}
		return Subblock{Body: b}, nil

	case Decl:
		t, err := s.expr(st.Type, name, replacement)
		if err != nil {
			return nil, err
		}
		d := Decl{Type: t, Name: st.Name}
		if st.Value != nil {
			if d.Value, err = s.expr(st.Value, name, replacement); err != nil {
				return nil, err
			}
		}
		return d, nil

	case IfChain:
		conds := make([]Expr, len(st.Conds))
		thens := make([]Block, len(st.Thens))
		for i := range st.Conds {
			var err error
			if conds[i], err = s.expr(st.Conds[i], name, replacement); err != nil {
				return nil, err
			}
			if thens[i], err = s.block(st.Thens[i], name, replacement); err != nil {
				return nil, err
			}
		}
		c := IfChain{Conds: conds, Thens: thens}
		if st.Else != nil {
			var err error
			if c.Else, err = s.block(st.Else, name, replacement); err != nil {
				return nil, err
			}
		}
		return c, nil
	}

	panic("ast: unknown statement variant")
}

func (s subster) block(b Block, name symbols.Symbol, replacement Expr) (Block, error) {
	out := make(Block, len(b))
	for i, st := range b {
		var err error
		if out[i], err = s.statement(st, name, replacement); err != nil {
			return nil, err
		}
	}
	return out, nil
}
