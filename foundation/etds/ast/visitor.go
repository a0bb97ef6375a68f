// File: visitor.go
// Title: Expression AST Visitor
// Description: Implements the visitor pattern and tree walking helpers for
//              the closed set of expression nodes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial visitor implementation

package ast

import "fmt"

// Visitor receives one call per node variant
type Visitor interface {
	VisitBinaryOp(n *BinaryOp) error
	VisitIdentifier(n *Identifier) error
	VisitNumberLiteral(n *NumberLiteral) error
}

// Accept dispatches n to the matching visitor method
func Accept(n Node, v Visitor) error {
	switch n := n.(type) {
	case *BinaryOp:
		return v.VisitBinaryOp(n)
	case *Identifier:
		return v.VisitIdentifier(n)
	case *NumberLiteral:
		return v.VisitNumberLiteral(n)
	default:
		panic(fmt.Sprintf("ast: unknown node %T", n))
	}
}

// Walk visits the tree in pre-order (node, left, right) and stops at the
// first error returned by the visitor.
func Walk(n Node, v Visitor) error {
	if err := Accept(n, v); err != nil {
		return err
	}
	if b, ok := n.(*BinaryOp); ok {
		if err := Walk(b.Left, v); err != nil {
			return err
		}
		return Walk(b.Right, v)
	}
	return nil
}

// Inspect calls fn for every node in pre-order; returning false skips the
// node's children.
func Inspect(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if b, ok := n.(*BinaryOp); ok {
		Inspect(b.Left, fn)
		Inspect(b.Right, fn)
	}
}

// Count returns the number of nodes in the tree
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}

// Depth returns the height of the tree; a single leaf has depth 1
func Depth(n Node) int {
	b, ok := n.(*BinaryOp)
	if !ok {
		return 1
	}
	return 1 + max(Depth(b.Left), Depth(b.Right))
}

// Identifiers returns identifier names in left-to-right source order,
// including repetitions.
func Identifiers(n Node) []string {
	var names []string
	Inspect(n, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	return names
}
