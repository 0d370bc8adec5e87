package ast

import (
	"fmt"
	"strings"
)

// Concrete-syntax renderers. Error messages carry expressions as values
// and render them through these.

func (l Literal) String() string {
	switch l.Kind {
	case Type:
		return "type"
	case Void:
		return "void"
	case U8:
		return "u8"
	case S8:
		return "s8"
	case U16:
		return "u16"
	case S16:
		return "s16"
	case U32:
		return "u32"
	case S32:
		return "s32"
	case U64:
		return "u64"
	case S64:
		return "s64"
	case Bool:
		return "bool"
	case Integral:
		return fmt.Sprintf("%d", l.Integral)
	case Boolean:
		if l.Boolean {
			return "true"
		}
		return "false"
	}
	panic("ast: unknown literal kind")
}

func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpAndThen:
		return ">>"
	}
	panic("ast: unknown binary operator")
}

// ExprString renders e in the surface syntax.
func ExprString(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

// writeSubexpr parenthesizes everything that isn't atomic.
func writeSubexpr(sb *strings.Builder, e Expr) {
	switch e.(type) {
	case Lit, Ident, Struct, Union:
		writeExpr(sb, e)
	default:
		sb.WriteByte('(')
		writeExpr(sb, e)
		sb.WriteByte(')')
	}
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Lit:
		sb.WriteString(e.Literal.String())

	case Ident:
		sb.WriteString(e.Name.String())

	case BinOp:
		writeSubexpr(sb, e.L)
		fmt.Fprintf(sb, " %s ", e.Op)
		writeSubexpr(sb, e.R)

	case IfThenElse:
		sb.WriteString("if ")
		writeExpr(sb, e.Pred)
		sb.WriteString(" then ")
		writeExpr(sb, e.Then)
		sb.WriteString(" else ")
		writeExpr(sb, e.Else)

	case FuncType:
		writeSubexpr(sb, e.Ret)
		sb.WriteByte('[')
		for i, p := range e.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, p.Type)
			if p.Name.Valid() {
				fmt.Fprintf(sb, " %s", p.Name)
			}
		}
		sb.WriteByte(']')

	case Lambda:
		sb.WriteString("\\(")
		for i, p := range e.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, p.Type)
			fmt.Fprintf(sb, " %s", p.Name)
		}
		sb.WriteString(") -> ")
		writeExpr(sb, e.Body)

	case Call:
		writeSubexpr(sb, e.Func)
		sb.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a)
		}
		sb.WriteByte(')')

	case Struct:
		sb.WriteString("struct { ")
		for _, f := range e.Fields {
			writeExpr(sb, f.Type)
			fmt.Fprintf(sb, " %s; ", f.Name)
		}
		sb.WriteByte('}')

	case Union:
		sb.WriteString("union { ")
		for _, f := range e.Fields {
			writeExpr(sb, f.Type)
			fmt.Fprintf(sb, " %s; ", f.Name)
		}
		sb.WriteByte('}')

	case Pack:
		sb.WriteByte('[')
		writeSubexpr(sb, e.Type)
		sb.WriteString("]{")
		for i, a := range e.Assigns {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, ".%s = ", a.Name)
			writeExpr(sb, a.Value)
		}
		sb.WriteByte('}')

	case Member:
		writeSubexpr(sb, e.Record)
		fmt.Fprintf(sb, ".%s", e.Field)

	case Pointer:
		writeSubexpr(sb, e.Inner)
		sb.WriteByte('*')

	case Reference:
		sb.WriteByte('&')
		writeSubexpr(sb, e.Inner)

	case Dereference:
		sb.WriteByte('*')
		writeSubexpr(sb, e.Inner)

	default:
		panic("ast: unknown expression variant")
	}
}

func StatementString(s Statement) string {
	var sb strings.Builder
	writeStatement(&sb, 0, s)
	return sb.String()
}

func indent(sb *strings.Builder, nesting int) {
	for i := 0; i < nesting; i++ {
		sb.WriteString("    ")
	}
}

func writeStatement(sb *strings.Builder, nesting int, s Statement) {
	indent(sb, nesting)

	switch s := s.(type) {
	case Empty:
		sb.WriteString(";\n")

	case ExprStatement:
		writeExpr(sb, s.Expr)
		sb.WriteString(";\n")

	case Return:
		sb.WriteString("return ")
		writeExpr(sb, s.Expr)
		sb.WriteString(";\n")

	case Subblock:
		sb.WriteString("{\n")
		writeBlock(sb, nesting+1, s.Body)
		indent(sb, nesting)
		sb.WriteString("}\n")

	case Decl:
		writeExpr(sb, s.Type)
		fmt.Fprintf(sb, " %s", s.Name)
		if s.Value != nil {
			sb.WriteString(" = ")
			writeExpr(sb, s.Value)
		}
		sb.WriteString(";\n")

	case IfChain:
		for i := range s.Conds {
			if i != 0 {
				indent(sb, nesting)
				sb.WriteString("} else ")
			}
			sb.WriteString("if (")
			writeExpr(sb, s.Conds[i])
			sb.WriteString(") {\n")
			writeBlock(sb, nesting+1, s.Thens[i])
		}
		if s.Else != nil {
			indent(sb, nesting)
			sb.WriteString("} else {\n")
			writeBlock(sb, nesting+1, s.Else)
		}
		indent(sb, nesting)
		sb.WriteString("}\n")

	default:
		panic("ast: unknown statement variant")
	}
}

func writeBlock(sb *strings.Builder, nesting int, b Block) {
	for _, s := range b {
		writeStatement(sb, nesting, s)
	}
}

func (b Block) String() string {
	var sb strings.Builder
	writeBlock(&sb, 0, b)
	return sb.String()
}

func (v Func) String() string {
	var sb strings.Builder
	writeSubexpr(&sb, v.Ret)
	fmt.Fprintf(&sb, " %s(", v.Name)
	for i, p := range v.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(&sb, p.Type)
		if p.Name.Valid() {
			fmt.Fprintf(&sb, " %s", p.Name)
		}
	}
	sb.WriteString(") {\n")
	writeBlock(&sb, 1, v.Body)
	sb.WriteString("}\n")
	return sb.String()
}

func (u TranslationUnit) String() string {
	var sb strings.Builder
	for i, top := range u.TopLevels {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch top := top.(type) {
		case Func:
			sb.WriteString(top.String())
		}
	}
	return sb.String()
}
