package parser

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	"github.com/msto63/etds/foundation/etds/token"
)

// SyntaxError reports a lookahead token outside the FIRST/FOLLOW set
// required at the current grammar position.
type SyntaxError struct {
	Pos         token.Position // Position of the offending token
	Found       token.Kind     // Kind of the offending token
	Lexeme      string         // Source text of the offending token
	Expected    []token.Kind   // Acceptable kinds at this position
	Nonterminal Nonterminal    // Active non-terminal, empty when not applicable
	Reason      string         // Replaces the expected/found message when set
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind(), e.Pos, e.Detail())
}

// Kind returns the error kind name used in diagnostics
func (e *SyntaxError) Kind() string {
	return "SyntaxError"
}

// Position returns the source position of the error
func (e *SyntaxError) Position() token.Position {
	return e.Pos
}

// Detail returns the message without kind and position
func (e *SyntaxError) Detail() string {
	var sb strings.Builder
	switch {
	case e.Reason != "":
		sb.WriteString(e.Reason)
	case len(e.Expected) == 1:
		fmt.Fprintf(&sb, "expected %s, found %s", e.Expected[0], describe(e.Found, e.Lexeme))
	default:
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&sb, "expected one of %s, found %s", strings.Join(names, ", "), describe(e.Found, e.Lexeme))
	}
	if e.Nonterminal != "" {
		fmt.Fprintf(&sb, " in %s", e.Nonterminal)
	}
	return sb.String()
}

// Code returns the core error code for syntax errors
func (e *SyntaxError) Code() mdwerror.Code {
	return mdwerror.CodeSyntaxError
}

// TrailingInputError reports input left over after a complete expression
type TrailingInputError struct {
	Pos    token.Position // Position of the first unconsumed token
	Found  token.Kind     // Kind of the first unconsumed token
	Lexeme string         // Source text of the first unconsumed token
}

// Error implements the error interface
func (e *TrailingInputError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind(), e.Pos, e.Detail())
}

// Kind returns the error kind name used in diagnostics
func (e *TrailingInputError) Kind() string {
	return "TrailingInputError"
}

// Position returns the source position of the error
func (e *TrailingInputError) Position() token.Position {
	return e.Pos
}

// Detail returns the message without kind and position
func (e *TrailingInputError) Detail() string {
	return fmt.Sprintf("unconsumed input starting with %s", describe(e.Found, e.Lexeme))
}

// Code returns the core error code for trailing input
func (e *TrailingInputError) Code() mdwerror.Code {
	return mdwerror.CodeTrailingInput
}

// describe renders a token kind with its lexeme, e.g. RPAREN ')'
func describe(k token.Kind, lexeme string) string {
	if lexeme == "" {
		return k.String()
	}
	return fmt.Sprintf("%s '%s'", k, lexeme)
}
