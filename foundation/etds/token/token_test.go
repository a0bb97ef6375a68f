package token

import (
	"math"
	"testing"
)

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind   Kind
		name   string
		symbol string
	}{
		{Identifier, "ID", "id"},
		{Number, "NUM", "num"},
		{Plus, "PLUS", "+"},
		{Minus, "MINUS", "-"},
		{Times, "TIMES", "*"},
		{Divide, "DIV", "/"},
		{LParen, "LPAREN", "("},
		{RParen, "RPAREN", ")"},
		{EndOfInput, "EOF", "$"},
		{Kind(99), "UNKNOWN", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.kind.Symbol(); got != tt.symbol {
				t.Errorf("Symbol() = %q, want %q", got, tt.symbol)
			}
		})
	}

	if len(Kinds()) != 9 {
		t.Errorf("Kinds() returned %d kinds, want 9", len(Kinds()))
	}
}

func TestNumericString(t *testing.T) {
	tests := []struct {
		name string
		n    Numeric
		want string
	}{
		{"int", Int(42), "42"},
		{"zero", Int(0), "0"},
		{"float", Float(3.14), "3.14"},
		{"whole float", Float(3), "3.0"},
		{"zero float", Float(0), "0.0"},
		{"tiny float", Float(0.00001), "1e-05"},
		{"huge float", Float(1e20), "1e+20"},
		{"inf", Float(math.Inf(1)), "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumberAccessors(t *testing.T) {
	i := Int(7)
	if i.IsFloat() || i.Int() != 7 || i.Float() != 7.0 {
		t.Errorf("Int(7) accessors wrong: %v %v %v", i.IsFloat(), i.Int(), i.Float())
	}
	if v, ok := i.Interface().(int64); !ok || v != 7 {
		t.Errorf("Int(7).Interface() = %#v", i.Interface())
	}

	f := Float(2.5)
	if !f.IsFloat() || f.Int() != 2 || f.Float() != 2.5 {
		t.Errorf("Float(2.5) accessors wrong: %v %v %v", f.IsFloat(), f.Int(), f.Float())
	}
	if v, ok := f.Interface().(float64); !ok || v != 2.5 {
		t.Errorf("Float(2.5).Interface() = %#v", f.Interface())
	}

	if Int(3) == Float(3) {
		t.Error("Int(3) and Float(3) must differ")
	}
}

func TestTokenText(t *testing.T) {
	v := Float(3.50)
	tests := []struct {
		tok  Token
		text string
		repr string
	}{
		{
			tok:  Token{Kind: Identifier, Lexeme: "total", Pos: Position{Line: 1, Column: 1}},
			text: "total",
			repr: `ID("total")@1:1`,
		},
		{
			tok:  Token{Kind: Number, Lexeme: "3.50", Value: &v, Pos: Position{Line: 2, Column: 4, Offset: 9}},
			text: "3.5",
			repr: `NUM("3.50")@2:4`,
		},
		{
			tok:  Token{Kind: EndOfInput, Pos: Position{Line: 1, Column: 6}},
			text: "",
			repr: `EOF("")@1:6`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.repr, func(t *testing.T) {
			if got := tt.tok.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
			if got := tt.tok.String(); got != tt.repr {
				t.Errorf("String() = %q, want %q", got, tt.repr)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	if (Position{}).IsValid() {
		t.Error("zero Position should be invalid")
	}
	p := Position{Line: 3, Column: 12}
	if !p.IsValid() || p.String() != "3:12" {
		t.Errorf("Position = %v, valid %v", p, p.IsValid())
	}
}
