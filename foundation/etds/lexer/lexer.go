// File: lexer.go
// Title: Expression Lexical Analyzer (Tokenizer)
// Description: Implements the lexical analysis phase of expression
//              translation. Converts an expression string into an ordered
//              token sequence terminated by exactly one EndOfInput token and
//              tracks line/column information for error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer implementation

package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/etds/foundation/etds/token"
)

// Options configures lexer behavior
type Options struct {
	// MaxInputLength rejects longer inputs (in bytes); 0 disables the check
	MaxInputLength int
}

// Lexer performs lexical analysis of an arithmetic expression
type Lexer struct {
	input   string // Input string
	offset  int    // Byte offset of ch
	readPos int    // Byte offset after ch
	ch      rune   // Current character under examination
	eof     bool   // No character left
	line    int    // Line of ch (1-based)
	column  int    // Column of ch (1-based)
	options Options
}

// New creates a new lexer for the given input
func New(input string, opts Options) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		column:  1,
		options: opts,
	}
	l.decode()
	return l
}

// Tokenize is a convenience function that tokenizes input with default options
func Tokenize(input string) ([]token.Token, error) {
	return New(input, Options{}).Tokenize()
}

// Tokenize returns all tokens of the input. The last token is always the
// single EndOfInput token. On error no tokens are returned.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	if limit := l.options.MaxInputLength; limit > 0 && len(l.input) > limit {
		return nil, &LexError{
			Pos:     token.Position{Line: 1, Column: 1},
			Message: fmt.Sprintf("input exceeds maximum length: %d > %d", len(l.input), limit),
		}
	}

	tokens := make([]token.Token, 0, len(l.input)/2+1)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EndOfInput {
			return tokens, nil
		}
	}
}

// Next scans and returns the next token. After EndOfInput has been returned
// every further call returns EndOfInput again.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	pos := l.position()
	if l.eof {
		return token.Token{Kind: token.EndOfInput, Pos: pos}, nil
	}

	switch ch := l.ch; {
	case isIdentStart(ch):
		return token.Token{Kind: token.Identifier, Lexeme: l.readIdentifier(), Pos: pos}, nil
	case isDigit(ch):
		return l.readNumber(pos)
	default:
		kind, ok := singleCharKinds[ch]
		if !ok {
			return token.Token{}, &LexError{
				Pos:     pos,
				Char:    ch,
				Message: fmt.Sprintf("unexpected character %q", ch),
			}
		}
		l.advance()
		return token.Token{Kind: kind, Lexeme: string(ch), Pos: pos}, nil
	}
}

// singleCharKinds maps operator and parenthesis characters to their kinds
var singleCharKinds = map[rune]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Times,
	'/': token.Divide,
	'(': token.LParen,
	')': token.RParen,
}

// decode loads the rune at readPos into ch
func (l *Lexer) decode() {
	l.offset = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.eof = true
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += w
}

// advance consumes the current character and updates line/column tracking
func (l *Lexer) advance() {
	if l.eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.decode()
}

// peek returns the character after ch without consuming anything
func (l *Lexer) peek() (rune, bool) {
	if l.readPos >= len(l.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r, true
}

// position returns the position of the current character
func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.offset}
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines
func (l *Lexer) skipWhitespace() {
	for !l.eof && isWhitespace(l.ch) {
		l.advance()
	}
}

// readIdentifier reads a maximal run of letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	start := l.offset
	for !l.eof && isIdentPart(l.ch) {
		l.advance()
	}
	return l.input[start:l.offset]
}

// readNumber reads an integer or decimal literal starting at pos
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.offset
	for !l.eof && isDigit(l.ch) {
		l.advance()
	}

	isFloat := false
	if !l.eof && l.ch == '.' {
		dot := l.position()
		if next, ok := l.peek(); !ok || !isDigit(next) {
			return token.Token{}, &LexError{
				Pos:     dot,
				Char:    '.',
				Message: "decimal point must be followed by at least one digit",
			}
		}
		isFloat = true
		l.advance() // consume '.'
		for !l.eof && isDigit(l.ch) {
			l.advance()
		}
	}

	lexeme := l.input[start:l.offset]
	value, err := parseNumber(lexeme, isFloat)
	if err != nil {
		return token.Token{}, &LexError{
			Pos:     pos,
			Message: fmt.Sprintf("invalid number %q: %v", lexeme, err),
		}
	}

	return token.Token{Kind: token.Number, Lexeme: lexeme, Value: &value, Pos: pos}, nil
}

// parseNumber converts a scanned literal to its numeric value. Integers
// beyond int64 become floats, and floats beyond float64 become +Inf.
func parseNumber(lexeme string, isFloat bool) (token.Numeric, error) {
	if !isFloat {
		i, err := strconv.ParseInt(lexeme, 10, 64)
		if err == nil {
			return token.Int(i), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return token.Numeric{}, err
		}
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return token.Numeric{}, err
	}
	return token.Float(f), nil
}

// Utility functions

// isWhitespace checks for the four skipped whitespace characters
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// isIdentStart checks if the character can start an identifier
func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isIdentPart checks if the character can continue an identifier. Any
// Unicode letter or number qualifies, so x٣ and x² are single identifiers.
func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_'
}

// isDigit checks if the character is an ASCII digit; numeric literals
// accept no other digits
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
