// File: etds.go
// Title: Expression Translation Engine
// Description: Runs lexical and syntactic analysis over one expression and
//              returns the token sequence, the tree and the symbol table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine implementation

package etds

import (
	"errors"
	"time"

	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/foundation/etds/ast"
	"github.com/msto63/etds/foundation/etds/lexer"
	"github.com/msto63/etds/foundation/etds/parser"
	"github.com/msto63/etds/foundation/etds/symtab"
	"github.com/msto63/etds/foundation/etds/token"
)

// ErrorKind names the class of a translation failure
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindLexError      ErrorKind = "LexError"
	KindSyntaxError   ErrorKind = "SyntaxError"
	KindTrailingInput ErrorKind = "TrailingInputError"
)

// Options configures an Engine
type Options struct {
	// Logger receives debug traces; nil disables logging
	Logger *mdwlog.Logger

	// MaxInputLength rejects longer inputs (in bytes); 0 disables the check
	MaxInputLength int

	// MaxDepth bounds parenthesis nesting; 0 selects parser.DefaultMaxDepth
	MaxDepth int
}

// Result holds everything a successful translation produced
type Result struct {
	Input    string
	Tokens   []token.Token
	Tree     ast.Node
	Symbols  *symtab.Table
	Duration time.Duration
}

// Engine compiles expressions. An Engine holds no per-call state and is
// safe for concurrent use; every Compile builds its own lexer, parser and
// symbol table.
type Engine struct {
	options Options
	logger  *mdwlog.Logger
}

// NewEngine creates an engine with the given options
func NewEngine(opts Options) *Engine {
	e := &Engine{options: opts}
	if opts.Logger != nil {
		e.logger = opts.Logger.WithField("component", "etds-engine")
	}
	return e
}

// Compile translates text with default options
func Compile(text string) (*Result, error) {
	return NewEngine(Options{}).Compile(text)
}

// Compile tokenizes and parses text. On failure it returns a nil result
// and one of *lexer.LexError, *parser.SyntaxError or
// *parser.TrailingInputError.
func (e *Engine) Compile(text string) (*Result, error) {
	start := time.Now()
	var timer *mdwlog.Timer
	if e.logger != nil {
		timer = e.logger.StartTimer("compile").WithField("input_length", len(text))
	}

	tokens, err := lexer.New(text, lexer.Options{MaxInputLength: e.options.MaxInputLength}).Tokenize()
	if err != nil {
		e.fail(timer, err)
		return nil, err
	}

	var parserLogger *mdwlog.Logger
	if e.logger != nil {
		parserLogger = e.logger.WithField("phase", "parse")
	}
	tree, symbols, err := parser.New(tokens, parser.Options{Logger: parserLogger, MaxDepth: e.options.MaxDepth}).Parse()
	if err != nil {
		e.fail(timer, err)
		return nil, err
	}

	res := &Result{
		Input:    text,
		Tokens:   tokens,
		Tree:     tree,
		Symbols:  symbols,
		Duration: time.Since(start),
	}
	if timer != nil {
		timer.WithFields(mdwlog.Fields{
			"tokens":  len(tokens),
			"nodes":   ast.Count(tree),
			"symbols": symbols.Len(),
		}).Stop()
	}
	return res, nil
}

func (e *Engine) fail(timer *mdwlog.Timer, err error) {
	if timer == nil {
		return
	}
	timer.WithField("error_kind", string(KindOf(err))).StopWithError(err)
}

// positioned is implemented by the three translation error types
type positioned interface {
	error
	Kind() string
	Position() token.Position
	Detail() string
}

// KindOf classifies err; it returns KindNone for nil and foreign errors
func KindOf(err error) ErrorKind {
	var lexErr *lexer.LexError
	var synErr *parser.SyntaxError
	var trailErr *parser.TrailingInputError
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &lexErr):
		return KindLexError
	case errors.As(err, &synErr):
		return KindSyntaxError
	case errors.As(err, &trailErr):
		return KindTrailingInput
	default:
		return KindNone
	}
}

// PositionOf returns the source position carried by a translation error
func PositionOf(err error) (token.Position, bool) {
	var p positioned
	if errors.As(err, &p) {
		return p.Position(), true
	}
	return token.Position{}, false
}

// DetailOf returns the message of a translation error without kind and
// position, or err.Error() for any other error.
func DetailOf(err error) string {
	var p positioned
	if errors.As(err, &p) {
		return p.Detail()
	}
	return err.Error()
}

// Diagnostic renders err as "<ErrorKind> at <line>:<column>: <detail>".
// Errors that are not translation errors are returned unchanged.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	var p positioned
	if errors.As(err, &p) {
		return p.Error()
	}
	return err.Error()
}
