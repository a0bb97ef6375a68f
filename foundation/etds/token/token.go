// File: token.go
// Title: Expression Token Definitions
// Description: Defines the token kinds, source positions and numeric values
//              shared by the lexer, the parser and the AST. Tokens are
//              immutable values created once by the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token definitions

package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind represents the type of a lexical token
type Kind int

const (
	Identifier Kind = iota // a, total_1, _x
	Number                 // 42, 3.14
	Plus                   // +
	Minus                  // -
	Times                  // *
	Divide                 // /
	LParen                 // (
	RParen                 // )
	EndOfInput             // end of input, always the last token
)

// String returns the name of the token kind
func (k Kind) String() string {
	switch k {
	case Identifier:
		return "ID"
	case Number:
		return "NUM"
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	case Times:
		return "TIMES"
	case Divide:
		return "DIV"
	case LParen:
		return "LPAREN"
	case RParen:
		return "RPAREN"
	case EndOfInput:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the terminal symbol used for the kind in the grammar tables
func (k Kind) Symbol() string {
	switch k {
	case Identifier:
		return "id"
	case Number:
		return "num"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Divide:
		return "/"
	case LParen:
		return "("
	case RParen:
		return ")"
	case EndOfInput:
		return "$"
	default:
		return "?"
	}
}

// Kinds returns all token kinds in declaration order
func Kinds() []Kind {
	return []Kind{Identifier, Number, Plus, Minus, Times, Divide, LParen, RParen, EndOfInput}
}

// Position represents a position in the source text
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries line information
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Numeric is the value of a Number token, either an integer or a float
type Numeric struct {
	i       int64
	f       float64
	isFloat bool
}

// Int creates an integer number
func Int(v int64) Numeric {
	return Numeric{i: v}
}

// Float creates a floating-point number
func Float(v float64) Numeric {
	return Numeric{f: v, isFloat: true}
}

// IsFloat reports whether the number is a floating-point value
func (n Numeric) IsFloat() bool {
	return n.isFloat
}

// Int returns the integer value; floats are truncated
func (n Numeric) Int() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float returns the value as float64
func (n Numeric) Float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// Interface returns the value as int64 or float64
func (n Numeric) Interface() interface{} {
	if n.isFloat {
		return n.f
	}
	return n.i
}

// String formats the number. Floats keep a fractional part so that 3.0 and
// 3 stay distinguishable in rendered trees; very large or very small
// magnitudes switch to exponent notation.
func (n Numeric) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}
	abs := math.Abs(n.f)
	if math.IsInf(n.f, 0) || math.IsNaN(n.f) || (abs != 0 && (abs < 1e-4 || abs >= 1e16)) {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(n.f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Token represents a lexical token with position information
type Token struct {
	Kind   Kind     // Token kind
	Lexeme string   // Exact source text
	Value  *Numeric // Numeric value, set only for Number tokens
	Pos    Position // Position of the first character
}

// Text returns the token value: the lexeme for identifiers and the
// formatted value for numbers.
func (t Token) Text() string {
	if t.Kind == Number && t.Value != nil {
		return t.Value.String()
	}
	return t.Lexeme
}

// String returns a debug representation, e.g. NUM("3.5")@1:5
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Pos)
}
