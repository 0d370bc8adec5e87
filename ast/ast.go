// Package ast defines the expression, statement and top-level trees for
// the dependently typed surface language, together with their structural
// operations: deep copy, strict equality, free-variable analysis and
// capture-avoiding substitution.
//
// Ownership is tree shaped. No node aliases a subtree of another node;
// every operation that needs to reuse a subtree takes a Copy.
package ast

import (
	"github.com/depc-lang/depc/symbols"
)

type LiteralKind int

const (
	// The type of types.
	Type LiteralKind = iota
	Void
	U8
	S8
	U16
	S16
	U32
	S32
	U64
	S64
	Bool
	// An arbitrary-width unsigned integer constant.
	Integral
	// A boolean constant.
	Boolean
)

// Literal is a primitive type constant or a value constant. Copied by
// value.
type Literal struct {
	Kind     LiteralKind
	Integral uint64
	Boolean  bool
}

type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	// Sequencing: evaluate the left operand, discard it, yield the right.
	OpAndThen
)

type Expr interface {
	isExpr()
}

type Lit struct {
	Literal
}

func (v Lit) isExpr() {}

type Ident struct {
	Name symbols.Symbol
}

func (v Ident) isExpr() {}

type BinOp struct {
	Op BinaryOp
	L  Expr
	R  Expr
}

func (v BinOp) isExpr() {}

type IfThenElse struct {
	Pred Expr
	Then Expr
	Else Expr
}

func (v IfThenElse) isExpr() {}

// Param is one entry of a function type's or lambda's parameter
// telescope, or of a struct/union field list. FuncType parameters may be
// unnamed (Name == symbols.None); lambda parameters and struct/union
// fields are always named.
type Param struct {
	Type Expr
	Name symbols.Symbol
}

// FuncType is a dependent function type: each parameter's type and the
// return type may reference the names of earlier parameters.
type FuncType struct {
	Ret    Expr
	Params []Param
}

func (v FuncType) isExpr() {}

type Lambda struct {
	Params []Param
	Body   Expr
}

func (v Lambda) isExpr() {}

type Call struct {
	Func Expr
	Args []Expr
}

func (v Call) isExpr() {}

// Struct is a product type whose fields form a telescope: field i's type
// may reference the names of fields 0..i-1.
type Struct struct {
	Fields []Param
}

func (v Struct) isExpr() {}

// Union is a sum type. Alternatives are independent; no field may
// reference a sibling's name.
type Union struct {
	Fields []Param
}

func (v Union) isExpr() {}

// Assign is one field assignment of a Pack. The name is a selector
// label, not a binder.
type Assign struct {
	Name  symbols.Symbol
	Value Expr
}

// Pack constructs a value of a struct or union type. A struct pack
// assigns every field exactly once in declaration order; a union pack
// assigns exactly one alternative.
type Pack struct {
	Type    Expr
	Assigns []Assign
}

func (v Pack) isExpr() {}

type Member struct {
	Record Expr
	Field  symbols.Symbol
}

func (v Member) isExpr() {}

type Pointer struct {
	Inner Expr
}

func (v Pointer) isExpr() {}

type Reference struct {
	Inner Expr
}

func (v Reference) isExpr() {}

type Dereference struct {
	Inner Expr
}

func (v Dereference) isExpr() {}

type Statement interface {
	isStatement()
}

type Empty struct{}

func (v Empty) isStatement() {}

type ExprStatement struct {
	Expr Expr
}

func (v ExprStatement) isStatement() {}

type Return struct {
	Expr Expr
}

func (v Return) isStatement() {}

// Block is an ordered statement sequence forming a nested lexical scope.
type Block []Statement

type Subblock struct {
	Body Block
}

func (v Subblock) isStatement() {}

// Decl introduces a name visible to all later statements of its
// enclosing block. Value is nil when the declaration has no initializer.
type Decl struct {
	Type  Expr
	Name  symbols.Symbol
	Value Expr
}

func (v Decl) isStatement() {}

// IfChain is a statement-level if/else-if/else chain. Conds and Thens
// have equal length; Else may be nil.
type IfChain struct {
	Conds []Expr
	Thens []Block
	Else  Block
}

func (v IfChain) isStatement() {}

type TopLevel interface {
	isTopLevel()
	TopLevelName() symbols.Symbol
}

type Func struct {
	Name   symbols.Symbol
	Ret    Expr
	Params []Param
	Body   Block
}

func (v Func) isTopLevel() {}

func (v Func) TopLevelName() symbols.Symbol { return v.Name }

// Signature is the function's type as written: its return type and
// parameter telescope, without the body. Shares storage with the
// receiver; Copy it before transforming.
func (v Func) Signature() FuncType {
	return FuncType{Ret: v.Ret, Params: v.Params}
}

type TranslationUnit struct {
	TopLevels []TopLevel
}
