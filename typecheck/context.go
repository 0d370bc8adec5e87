// Package typecheck implements the semantic core: evaluation of type
// expressions to normal form, definitional equality, the bidirectional
// checker/inferencer and signature-dependency ordering of top levels.
//
// Everything is single threaded and fail fast: the first failure in a
// subexpression aborts checking of the enclosing declaration. The
// package performs no I/O; failures are returned as the structured
// conditions of the errors package.
package typecheck

import (
	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/symbols"
)

// Context maps names to their already-checked types. Scopes are pushed
// on entering a binder and popped on exit; lookups walk inner to outer.
type Context struct {
	Symbols *symbols.Table
	scopes  []map[symbols.Symbol]ast.Expr
}

func NewContext(tbl *symbols.Table) *Context {
	c := &Context{Symbols: tbl}
	c.Push()
	return c
}

func (c *Context) Push() {
	c.scopes = append(c.scopes, make(map[symbols.Symbol]ast.Expr))
}

func (c *Context) Pop() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Bind records name : typ in the innermost scope. The context keeps its
// own copy of typ. Unnamed binders bind nothing.
func (c *Context) Bind(name symbols.Symbol, typ ast.Expr) {
	if !name.Valid() {
		return
	}
	c.scopes[len(c.scopes)-1][name] = ast.Copy(typ)
}

func (c *Context) Lookup(name symbols.Symbol) (ast.Expr, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if typ, ok := c.scopes[i][name]; ok {
			return ast.Copy(typ), true
		}
	}
	return nil, false
}
