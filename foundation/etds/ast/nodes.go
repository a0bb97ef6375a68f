// File: nodes.go
// Title: Expression AST Node Definitions
// Description: Defines the closed set of AST node variants produced by the
//              predictive parser: binary operations, identifiers and number
//              literals. Nodes are immutable once built.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strings"

	"github.com/msto63/etds/foundation/etds/token"
)

// Node is implemented by exactly three types: *BinaryOp, *Identifier and
// *NumberLiteral. The unexported marker method keeps the set closed.
type Node interface {
	// Position returns the source position of the node
	Position() token.Position

	node() // marker method
}

// Operator represents one of the four binary operators
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// OperatorFromKind maps an operator token kind to its Operator
func OperatorFromKind(k token.Kind) (Operator, bool) {
	switch k {
	case token.Plus:
		return OpAdd, true
	case token.Minus:
		return OpSub, true
	case token.Times:
		return OpMul, true
	case token.Divide:
		return OpDiv, true
	default:
		return "", false
	}
}

// Precedence returns 1 for additive and 2 for multiplicative operators
func (o Operator) Precedence() int {
	switch o {
	case OpMul, OpDiv:
		return 2
	case OpAdd, OpSub:
		return 1
	default:
		return 0
	}
}

// BinaryOp represents "left op right"
type BinaryOp struct {
	Op    Operator       // Operator
	Left  Node           // Left operand
	Right Node           // Right operand
	Pos   token.Position // Position of the operator token
}

// Identifier represents a variable reference
type Identifier struct {
	Name string         // Identifier name
	Pos  token.Position // Source position
}

// NumberLiteral represents an integer or decimal literal
type NumberLiteral struct {
	Value token.Numeric  // Literal value
	Pos   token.Position // Source position
}

func (n *BinaryOp) Position() token.Position      { return n.Pos }
func (n *Identifier) Position() token.Position    { return n.Pos }
func (n *NumberLiteral) Position() token.Position { return n.Pos }

func (*BinaryOp) node()      {}
func (*Identifier) node()    {}
func (*NumberLiteral) node() {}

// NewBinaryOp builds a binary node; both children must be non-nil
func NewBinaryOp(op Operator, left, right Node, pos token.Position) *BinaryOp {
	if left == nil || right == nil {
		panic("ast: BinaryOp requires two children")
	}
	return &BinaryOp{Op: op, Left: left, Right: right, Pos: pos}
}

// Label returns the tree-rendering label of a node: the operator for
// BinaryOp, Id(name) and Num(value) for leaves.
func Label(n Node) string {
	switch n := n.(type) {
	case *BinaryOp:
		return string(n.Op)
	case *Identifier:
		return fmt.Sprintf("Id(%s)", n.Name)
	case *NumberLiteral:
		return fmt.Sprintf("Num(%s)", n.Value)
	default:
		panic(fmt.Sprintf("ast: unknown node %T", n))
	}
}

// String returns the compact form, e.g. Bin('-', Bin('-', Id(a), Id(b)), Id(c))
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *BinaryOp:
		fmt.Fprintf(sb, "Bin('%s', ", n.Op)
		writeNode(sb, n.Left)
		sb.WriteString(", ")
		writeNode(sb, n.Right)
		sb.WriteString(")")
	case *Identifier, *NumberLiteral:
		sb.WriteString(Label(n))
	default:
		panic(fmt.Sprintf("ast: unknown node %T", n))
	}
}

// Infix returns a fully parenthesized infix rendering, e.g. ((a - b) - c)
func Infix(n Node) string {
	switch n := n.(type) {
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)", Infix(n.Left), n.Op, Infix(n.Right))
	case *Identifier:
		return n.Name
	case *NumberLiteral:
		return n.Value.String()
	default:
		panic(fmt.Sprintf("ast: unknown node %T", n))
	}
}

// Equal reports whether two trees have the same shape, operators and leaf
// values. Positions are ignored.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *BinaryOp:
		b, ok := b.(*BinaryOp)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Identifier:
		b, ok := b.(*Identifier)
		return ok && a.Name == b.Name
	case *NumberLiteral:
		b, ok := b.(*NumberLiteral)
		return ok && a.Value == b.Value
	default:
		return a == nil && b == nil
	}
}
