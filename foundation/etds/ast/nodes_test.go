package ast

import (
	"testing"

	"github.com/msto63/etds/foundation/etds/token"
)

func TestOperatorFromKind(t *testing.T) {
	tests := []struct {
		kind token.Kind
		op   Operator
		ok   bool
		prec int
	}{
		{token.Plus, OpAdd, true, 1},
		{token.Minus, OpSub, true, 1},
		{token.Times, OpMul, true, 2},
		{token.Divide, OpDiv, true, 2},
		{token.LParen, "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			op, ok := OperatorFromKind(tt.kind)
			if op != tt.op || ok != tt.ok {
				t.Errorf("OperatorFromKind(%s) = %q, %v", tt.kind, op, ok)
			}
			if op.Precedence() != tt.prec {
				t.Errorf("Precedence() = %d, want %d", op.Precedence(), tt.prec)
			}
		})
	}
}

func TestRendering(t *testing.T) {
	tests := []struct {
		name  string
		tree  Node
		str   string
		infix string
	}{
		{
			name:  "leaf identifier",
			tree:  id("x"),
			str:   "Id(x)",
			infix: "x",
		},
		{
			name:  "float literal",
			tree:  &NumberLiteral{Value: token.Float(2)},
			str:   "Num(2.0)",
			infix: "2.0",
		},
		{
			name:  "left-nested subtraction",
			tree:  bin(OpSub, bin(OpSub, id("a"), id("b")), id("c")),
			str:   "Bin('-', Bin('-', Id(a), Id(b)), Id(c))",
			infix: "((a - b) - c)",
		},
		{
			name:  "precedence",
			tree:  bin(OpAdd, id("a"), bin(OpMul, id("b"), num(3))),
			str:   "Bin('+', Id(a), Bin('*', Id(b), Num(3)))",
			infix: "(a + (b * 3))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.tree); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := Infix(tt.tree); got != tt.infix {
				t.Errorf("Infix() = %q, want %q", got, tt.infix)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := bin(OpSub, id("a"), num(1))
	b := &BinaryOp{Op: OpSub, Left: &Identifier{Name: "a", Pos: token.Position{Line: 4, Column: 2}}, Right: num(1)}

	tests := []struct {
		name string
		x, y Node
		want bool
	}{
		{"same shape different positions", a, b, true},
		{"different operator", a, bin(OpAdd, id("a"), num(1)), false},
		{"different leaf", a, bin(OpSub, id("a"), num(2)), false},
		{"int vs float", num(1), &NumberLiteral{Value: token.Float(1)}, false},
		{"leaf vs binary", id("a"), a, false},
		{"both nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.x, tt.y); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBinaryOpRequiresChildren(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBinaryOp with a nil child should panic")
		}
	}()
	NewBinaryOp(OpAdd, id("a"), nil, token.Position{})
}
