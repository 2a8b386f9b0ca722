package eel

import (
	"strconv"
	"strings"
)

// Expr is a node in the abstract syntax tree of a program. The set of node
// types is closed: *NumberLiteral, *Identifier, *UnaryExpr, *BinaryExpr,
// *Assignment, *Call, and *Block. Each node exclusively owns its children.
type Expr interface {
	exprNode()
	fmt(b *strings.Builder)
}

// NumberLiteral is a numeric constant.
type NumberLiteral struct {
	Value float64
}

// Identifier is a variable reference or function name. Name is lowercased.
type Identifier struct {
	Name string
	Span Span
}

// UnaryExpr is a prefix operator applied to an operand.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Assignment stores Value into Target. Target is an *Identifier, or a *Call
// which must name megabuf or gmegabuf with one argument when evaluated.
type Assignment struct {
	Target Expr
	Op     AssignOp
	Value  Expr
}

// Call is a function call. The name is resolved at evaluation time.
type Call struct {
	Name *Identifier
	Args []Expr
}

// Block is a sequence of expressions whose value is that of the last one, or
// 0 if it is empty.
type Block struct {
	Body []Expr
}

func (*NumberLiteral) exprNode() {}
func (*Identifier) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*Assignment) exprNode()    {}
func (*Call) exprNode()          {}
func (*Block) exprNode()         {}

// UnaryOp is a prefix operator.
type UnaryOp int8

const (
	UnaryPlus UnaryOp = iota + 1
	UnaryMinus
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// BinaryOp is an infix operator.
type BinaryOp int8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpBitOr
	OpBitAnd
)

var binopNames = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpPow:    "^",
	OpEq:     "==",
	OpNe:     "!=",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
	OpAnd:    "&&",
	OpOr:     "||",
	OpBitOr:  "|",
	OpBitAnd: "&",
}

func (op BinaryOp) String() string {
	if op <= 0 || int(op) >= len(binopNames) {
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
	return binopNames[op]
}

// AssignOp is a plain or compound assignment operator.
type AssignOp int8

const (
	AssignSet AssignOp = iota + 1
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

func (op AssignOp) String() string {
	switch op {
	case AssignSet:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	default:
		return "AssignOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// Program is a parsed function body. Programs are never modified after
// parsing, so one may be evaluated any number of times.
type Program struct {
	Body *Block
}

// String renders the program with every compound expression parenthesized.
func (p *Program) String() string {
	var b strings.Builder
	for i, e := range p.Body.Body {
		if i > 0 {
			b.WriteString("; ")
		}
		e.fmt(&b)
	}
	return b.String()
}

func (n *NumberLiteral) fmt(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (n *Identifier) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *UnaryExpr) fmt(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Op.String())
	n.Operand.fmt(b)
	b.WriteByte(')')
}

func (n *BinaryExpr) fmt(b *strings.Builder) {
	b.WriteByte('(')
	n.Left.fmt(b)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	n.Right.fmt(b)
	b.WriteByte(')')
}

func (n *Assignment) fmt(b *strings.Builder) {
	b.WriteByte('(')
	n.Target.fmt(b)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	n.Value.fmt(b)
	b.WriteByte(')')
}

func (n *Call) fmt(b *strings.Builder) {
	b.WriteString(n.Name.Name)
	b.WriteByte('(')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
	b.WriteByte(')')
}

func (n *Block) fmt(b *strings.Builder) {
	b.WriteByte('(')
	for i, e := range n.Body {
		if i > 0 {
			b.WriteString("; ")
		}
		e.fmt(b)
	}
	b.WriteByte(')')
}
