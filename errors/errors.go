// Package errors defines the structured failure conditions reported by
// the type checker. Each kind is its own struct carrying the offending
// nodes as values; rendering happens in Error, destinations are the
// caller's business.
package errors

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/symbols"
)

type UnboundName struct {
	Name symbols.Symbol
}

func (e UnboundName) Error() string {
	return fmt.Sprintf("unbound name %s", e.Name)
}

type ArityMismatch struct {
	Expected int
	Got      int
	Node     ast.Expr
}

func (e ArityMismatch) Error() string {
	return fmt.Sprintf("expected %d arguments, got %d in %s",
		e.Expected, e.Got, ast.ExprString(e.Node))
}

type TypeMismatch struct {
	Expected ast.Expr
	Actual   ast.Expr
	Node     ast.Expr
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("expected type %s, got %s for %s",
		ast.ExprString(e.Expected), ast.ExprString(e.Actual), ast.ExprString(e.Node))
}

type NotAFunctionType struct {
	Type ast.Expr
	Node ast.Expr
}

func (e NotAFunctionType) Error() string {
	return fmt.Sprintf("%s is not a function type in %s",
		ast.ExprString(e.Type), ast.ExprString(e.Node))
}

type NotARecordType struct {
	Type ast.Expr
	Node ast.Expr
}

func (e NotARecordType) Error() string {
	return fmt.Sprintf("%s is not a struct or union type in %s",
		ast.ExprString(e.Type), ast.ExprString(e.Node))
}

type NotAPointerType struct {
	Type ast.Expr
	Node ast.Expr
}

func (e NotAPointerType) Error() string {
	return fmt.Sprintf("%s is not a pointer type in %s",
		ast.ExprString(e.Type), ast.ExprString(e.Node))
}

type UnknownField struct {
	Field symbols.Symbol
	Type  ast.Expr
}

func (e UnknownField) Error() string {
	return fmt.Sprintf("no field %s in %s", e.Field, ast.ExprString(e.Type))
}

type DuplicateField struct {
	Field symbols.Symbol
	Node  ast.Expr
}

func (e DuplicateField) Error() string {
	return fmt.Sprintf("field %s declared more than once in %s",
		e.Field, ast.ExprString(e.Node))
}

type IncompleteOrExtraPackAssignment struct {
	Type ast.Expr
	Node ast.Expr
}

func (e IncompleteOrExtraPackAssignment) Error() string {
	return fmt.Sprintf("pack %s does not assign the fields of %s exactly",
		ast.ExprString(e.Node), ast.ExprString(e.Type))
}

type NotABool struct {
	Actual ast.Expr
	Node   ast.Expr
}

func (e NotABool) Error() string {
	return fmt.Sprintf("condition %s has type %s, want bool",
		ast.ExprString(e.Node), ast.ExprString(e.Actual))
}

type NotIntegral struct {
	Actual ast.Expr
	Node   ast.Expr
}

func (e NotIntegral) Error() string {
	return fmt.Sprintf("operand %s has type %s, want a sized integral type",
		ast.ExprString(e.Node), ast.ExprString(e.Actual))
}

type CyclicSignatureDependency struct {
	Participants []symbols.Symbol
}

func (e CyclicSignatureDependency) Error() string {
	names := lo.Map(e.Participants, func(s symbols.Symbol, _ int) string {
		return s.String()
	})
	slices.Sort(names)
	return fmt.Sprintf("cyclic dependency among the signatures of %s",
		strings.Join(names, ", "))
}
