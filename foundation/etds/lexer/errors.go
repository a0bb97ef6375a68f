package lexer

import (
	"fmt"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	"github.com/msto63/etds/foundation/etds/token"
)

// LexError reports an unrecognized character, a malformed decimal literal
// or a literal that cannot be converted to its numeric type.
type LexError struct {
	Pos     token.Position // Position of the offending character
	Char    rune           // Offending character, 0 when not applicable
	Message string         // Detail message
}

// Error implements the error interface
func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind(), e.Pos, e.Message)
}

// Kind returns the error kind name used in diagnostics
func (e *LexError) Kind() string {
	return "LexError"
}

// Position returns the source position of the error
func (e *LexError) Position() token.Position {
	return e.Pos
}

// Detail returns the message without kind and position
func (e *LexError) Detail() string {
	return e.Message
}

// Code returns the core error code for lexical errors
func (e *LexError) Code() mdwerror.Code {
	return mdwerror.CodeLexError
}
