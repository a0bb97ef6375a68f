// File: lexer_test.go
// Title: Expression Lexer Unit Tests
// Description: Tests tokenization of every token kind, position tracking
//              across lines, malformed literals and unknown characters.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer test suite

package lexer

import (
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	"github.com/msto63/etds/foundation/etds/token"
)

type tok struct {
	kind   token.Kind
	lexeme string
	line   int
	column int
}

func TestLexer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "Simple sum",
			input: "a + b",
			expected: []tok{
				{token.Identifier, "a", 1, 1},
				{token.Plus, "+", 1, 3},
				{token.Identifier, "b", 1, 5},
				{token.EndOfInput, "", 1, 6},
			},
		},
		{
			name:  "All operators and parentheses",
			input: "(x-1)*y/2.5",
			expected: []tok{
				{token.LParen, "(", 1, 1},
				{token.Identifier, "x", 1, 2},
				{token.Minus, "-", 1, 3},
				{token.Number, "1", 1, 4},
				{token.RParen, ")", 1, 5},
				{token.Times, "*", 1, 6},
				{token.Identifier, "y", 1, 7},
				{token.Divide, "/", 1, 8},
				{token.Number, "2.5", 1, 9},
				{token.EndOfInput, "", 1, 12},
			},
		},
		{
			name:  "Identifiers with digits and underscores",
			input: "_tmp1 + total_2",
			expected: []tok{
				{token.Identifier, "_tmp1", 1, 1},
				{token.Plus, "+", 1, 7},
				{token.Identifier, "total_2", 1, 9},
				{token.EndOfInput, "", 1, 16},
			},
		},
		{
			name:  "Number followed by identifier",
			input: "2x",
			expected: []tok{
				{token.Number, "2", 1, 1},
				{token.Identifier, "x", 1, 2},
				{token.EndOfInput, "", 1, 3},
			},
		},
		{
			name:  "Multiple lines",
			input: "a +\n\tb *\r\n  c",
			expected: []tok{
				{token.Identifier, "a", 1, 1},
				{token.Plus, "+", 1, 3},
				{token.Identifier, "b", 2, 2},
				{token.Times, "*", 2, 4},
				{token.Identifier, "c", 3, 3},
				{token.EndOfInput, "", 3, 4},
			},
		},
		{
			name:  "Unicode identifier",
			input: "größe * 2",
			expected: []tok{
				{token.Identifier, "größe", 1, 1},
				{token.Times, "*", 1, 7},
				{token.Number, "2", 1, 9},
				{token.EndOfInput, "", 1, 10},
			},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: []tok{{token.EndOfInput, "", 1, 1}},
		},
		{
			name:     "Whitespace only",
			input:    "  \n ",
			expected: []tok{{token.EndOfInput, "", 2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.input, err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) returned %d tokens, want %d: %v", tt.input, len(tokens), len(tt.expected), tokens)
			}
			for i, want := range tt.expected {
				got := tokens[i]
				if got.Kind != want.kind || got.Lexeme != want.lexeme ||
					got.Pos.Line != want.line || got.Pos.Column != want.column {
					t.Errorf("token %d = %v, want %s(%q)@%d:%d",
						i, got, want.kind, want.lexeme, want.line, want.column)
				}
			}
		})
	}
}

func TestLexer_NumberValues(t *testing.T) {
	tests := []struct {
		input   string
		isFloat bool
		text    string
	}{
		{"0", false, "0"},
		{"42", false, "42"},
		{"007", false, "7"},
		{"3.14", true, "3.14"},
		{"10.0", true, "10.0"},
		{"0.5", true, "0.5"},
		{"99999999999999999999", true, "1e+20"},
		{"9223372036854775807", false, "9223372036854775807"},
		{strings.Repeat("9", 400) + ".5", true, "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.input, err)
			}
			num := tokens[0]
			if num.Kind != token.Number || num.Value == nil {
				t.Fatalf("first token = %v, want a number", num)
			}
			if num.Value.IsFloat() != tt.isFloat {
				t.Errorf("IsFloat() = %v, want %v", num.Value.IsFloat(), tt.isFloat)
			}
			if num.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", num.Text(), tt.text)
			}
			if num.Lexeme != tt.input {
				t.Errorf("Lexeme = %q, want %q", num.Lexeme, tt.input)
			}
		})
	}
}

func TestLexer_UnicodeIdentifiers(t *testing.T) {
	for _, input := range []string{"x٣", "x²", "été1", "_٣_"} {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", input, err)
		}
		if len(tokens) != 2 || tokens[0].Kind != token.Identifier || tokens[0].Lexeme != input {
			t.Errorf("Tokenize(%q) = %v, want one identifier", input, tokens)
		}
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		char    rune
		message string
	}{
		{"Unknown character", "a # b", 1, 3, '#', "unexpected character '#'"},
		{"Trailing dot", "3.", 1, 2, '.', "decimal point must be followed by at least one digit"},
		{"Dot before operator", "1.+2", 1, 2, '.', "decimal point must be followed"},
		{"Second dot", "1.2.3", 1, 4, 0, "unexpected character '.'"},
		{"Leading dot", ".5", 1, 1, '.', "unexpected character '.'"},
		{"Error on second line", "a +\n  b $", 2, 5, '$', "unexpected character '$'"},
		{"Arabic-Indic digit", "٣", 1, 1, '٣', "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) = %v, want error", tt.input, tokens)
			}
			if tokens != nil {
				t.Errorf("Tokenize(%q) returned tokens on error: %v", tt.input, tokens)
			}

			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("error type = %T, want *LexError", err)
			}
			if lexErr.Pos.Line != tt.line || lexErr.Pos.Column != tt.column {
				t.Errorf("position = %s, want %d:%d", lexErr.Pos, tt.line, tt.column)
			}
			if tt.char != 0 && lexErr.Char != tt.char {
				t.Errorf("Char = %q, want %q", lexErr.Char, tt.char)
			}
			if !strings.Contains(lexErr.Detail(), tt.message) {
				t.Errorf("Detail() = %q, want it to contain %q", lexErr.Detail(), tt.message)
			}
			if !strings.HasPrefix(err.Error(), "LexError at ") {
				t.Errorf("Error() = %q, want LexError prefix", err.Error())
			}
			if mdwerror.GetCode(err) != mdwerror.CodeLexError {
				t.Errorf("code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeLexError)
			}
		})
	}
}

func TestLexer_MaxInputLength(t *testing.T) {
	_, err := New("a + b + c", Options{MaxInputLength: 5}).Tokenize()
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error = %v, want *LexError", err)
	}
	if lexErr.Pos.String() != "1:1" {
		t.Errorf("position = %s, want 1:1", lexErr.Pos)
	}

	if _, err := New("a + b", Options{MaxInputLength: 5}).Tokenize(); err != nil {
		t.Errorf("input at the limit rejected: %v", err)
	}
}

func TestLexer_NextAfterEOF(t *testing.T) {
	l := New("x", Options{})
	for i, want := range []token.Kind{token.Identifier, token.EndOfInput, token.EndOfInput} {
		got, err := l.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if got.Kind != want {
			t.Errorf("Next() #%d = %v, want %s", i, got, want)
		}
	}
}

// Positions reported by the lexer point back into the source: slicing the
// input at Offset yields the lexeme.
func TestLexer_PositionsRoundTrip(t *testing.T) {
	inputs := []string{
		"a + b * c",
		"(alpha - 12.5) / beta_2",
		"x\n+\n  (y * 3)",
		"größe + ä",
	}

	for _, input := range inputs {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", input, err)
		}
		for _, tk := range tokens {
			if tk.Kind == token.EndOfInput {
				if tk.Pos.Offset != len(input) {
					t.Errorf("%q: EOF offset = %d, want %d", input, tk.Pos.Offset, len(input))
				}
				continue
			}
			if got := input[tk.Pos.Offset : tk.Pos.Offset+len(tk.Lexeme)]; got != tk.Lexeme {
				t.Errorf("%q: input at %s = %q, want %q", input, tk.Pos, got, tk.Lexeme)
			}
			if got := lineCol(input, tk.Pos.Offset); got != tk.Pos.String() {
				t.Errorf("%q: recomputed position = %s, token says %s", input, got, tk.Pos)
			}
		}
	}
}

// Tokenizing twice yields identical sequences.
func TestLexer_Idempotent(t *testing.T) {
	input := "(a + 1.5) * b - c / 2"
	first, err1 := Tokenize(input)
	second, err2 := Tokenize(input)
	if err1 != nil || err2 != nil {
		t.Fatalf("Tokenize errors: %v, %v", err1, err2)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Kind != b.Kind || a.Lexeme != b.Lexeme || a.Pos != b.Pos || a.Text() != b.Text() {
			t.Errorf("token %d differs: %v vs %v", i, a, b)
		}
	}
}

func lineCol(input string, offset int) string {
	line, col := 1, 1
	for _, r := range input[:offset] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return token.Position{Line: line, Column: col}.String()
}
