// File: parser.go
// Title: Predictive Recursive-Descent Parser
// Description: Implements one parsing function per non-terminal of the
//              left-recursion-free expression grammar. E' and T' receive the
//              tree built so far as an inherited accumulator, which keeps
//              binary operators left-associative. Identifiers are recorded
//              in the symbol table as F consumes them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"

	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/foundation/etds/ast"
	"github.com/msto63/etds/foundation/etds/symtab"
	"github.com/msto63/etds/foundation/etds/token"
)

// DefaultMaxDepth bounds parenthesis nesting when Options.MaxDepth is 0
const DefaultMaxDepth = 10000

// Options configures a Parser
type Options struct {
	// Logger receives trace output for every production applied; nil disables it
	Logger *mdwlog.Logger

	// MaxDepth rejects deeper parenthesis nesting with a SyntaxError;
	// 0 selects DefaultMaxDepth
	MaxDepth int
}

// Parser holds the token sequence, a cursor into it and the symbol table
// being populated. A Parser is single-use and not safe for concurrent use.
type Parser struct {
	tokens  []token.Token
	k        int
	depth    int
	maxDepth int
	symbols  *symtab.Table
	logger   *mdwlog.Logger
}

// New creates a parser over tokens, which must end with exactly one
// EndOfInput token; Parse reports a violation as a SyntaxError.
func New(tokens []token.Token, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{
		tokens:   tokens,
		maxDepth: opts.MaxDepth,
		symbols:  symtab.New(),
		logger:   opts.Logger,
	}
}

// Parse parses a complete expression from tokens and returns the tree
// together with the symbol table filled while parsing.
func Parse(tokens []token.Token) (ast.Node, *symtab.Table, error) {
	return New(tokens, Options{}).Parse()
}

// Parse runs E and then requires the lookahead to be EndOfInput.
// On error the tree and table are nil.
func (p *Parser) Parse() (ast.Node, *symtab.Table, error) {
	if err := p.checkTerminated(); err != nil {
		return nil, nil, err
	}

	tree, err := p.E()
	if err != nil {
		p.trace("parse failed", mdwlog.Fields{"error": err.Error()})
		return nil, nil, err
	}

	if la := p.peek(); la.Kind != token.EndOfInput {
		err := &TrailingInputError{Pos: la.Pos, Found: la.Kind, Lexeme: la.Lexeme}
		p.trace("parse failed", mdwlog.Fields{"error": err.Error()})
		return nil, nil, err
	}

	if p.logger != nil {
		p.trace("parse complete", mdwlog.Fields{
			"nodes":   ast.Count(tree),
			"symbols": p.symbols.Len(),
		})
	}
	return tree, p.symbols, nil
}

// Symbols returns the table being populated by this parser
func (p *Parser) Symbols() *symtab.Table {
	return p.symbols
}

// E parses E -> T E'
func (p *Parser) E() (ast.Node, error) {
	p.enter(NtE)
	t, err := p.T()
	if err != nil {
		return nil, err
	}
	return p.EPrime(t)
}

// EPrime parses E' -> + T E' | - T E' | ε with th as the left operand.
// The ε alternative applies only when the lookahead is in FOLLOW(E').
// The tail recursion of E' runs as a loop that folds each operator into th,
// so long operator chains use constant stack.
func (p *Parser) EPrime(th ast.Node) (ast.Node, error) {
	for {
		p.enter(NtEPrime)
		la := p.peek()
		switch la.Kind {
		case token.Plus, token.Minus:
			p.advance()
			right, err := p.T()
			if err != nil {
				return nil, err
			}
			op, _ := ast.OperatorFromKind(la.Kind)
			th = ast.NewBinaryOp(op, th, right, la.Pos)
		default:
			if InFollow(NtEPrime, la.Kind) {
				return th, nil
			}
			return nil, p.unexpected(NtEPrime, la)
		}
	}
}

// T parses T -> F T'
func (p *Parser) T() (ast.Node, error) {
	p.enter(NtT)
	f, err := p.F()
	if err != nil {
		return nil, err
	}
	return p.TPrime(f)
}

// TPrime parses T' -> * F T' | / F T' | ε with th as the left operand.
// The ε alternative applies only when the lookahead is in FOLLOW(T').
func (p *Parser) TPrime(th ast.Node) (ast.Node, error) {
	for {
		p.enter(NtTPrime)
		la := p.peek()
		switch la.Kind {
		case token.Times, token.Divide:
			p.advance()
			right, err := p.F()
			if err != nil {
				return nil, err
			}
			op, _ := ast.OperatorFromKind(la.Kind)
			th = ast.NewBinaryOp(op, th, right, la.Pos)
		default:
			if InFollow(NtTPrime, la.Kind) {
				return th, nil
			}
			return nil, p.unexpected(NtTPrime, la)
		}
	}
}

// F parses F -> ( E ) | id | num
func (p *Parser) F() (ast.Node, error) {
	p.enter(NtF)
	la := p.peek()
	switch la.Kind {
	case token.LParen:
		if p.depth >= p.maxDepth {
			return nil, &SyntaxError{
				Pos:         la.Pos,
				Found:       la.Kind,
				Lexeme:      la.Lexeme,
				Nonterminal: NtF,
				Reason:      fmt.Sprintf("parentheses nested deeper than %d levels", p.maxDepth),
			}
		}
		p.advance()
		p.depth++
		inner, err := p.E()
		p.depth--
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil

	case token.Identifier:
		p.advance()
		entry := p.symbols.InsertIfAbsent(la.Lexeme, la.Pos.Line, la.Pos.Column)
		p.trace("identifier", mdwlog.Fields{
			"name":       la.Lexeme,
			"first_seen": entry.FirstSeen(),
		})
		return &ast.Identifier{Name: la.Lexeme, Pos: la.Pos}, nil

	case token.Number:
		p.advance()
		var v token.Numeric
		if la.Value != nil {
			v = *la.Value
		}
		return &ast.NumberLiteral{Value: v, Pos: la.Pos}, nil

	default:
		return nil, p.unexpected(NtF, la)
	}
}

// expect consumes the lookahead if it has kind k
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	la := p.peek()
	if la.Kind != k {
		return la, &SyntaxError{
			Pos:      la.Pos,
			Found:    la.Kind,
			Lexeme:   la.Lexeme,
			Expected: []token.Kind{k},
		}
	}
	p.advance()
	return la, nil
}

// peek returns the lookahead without consuming it. The cursor never moves
// past the trailing EndOfInput, so this is always in range once
// checkTerminated has passed.
func (p *Parser) peek() token.Token {
	return p.tokens[p.k]
}

func (p *Parser) advance() {
	if p.tokens[p.k].Kind != token.EndOfInput {
		p.k++
	}
}

// checkTerminated verifies the single-EndOfInput contract of the input
func (p *Parser) checkTerminated() error {
	if len(p.tokens) == 0 {
		return &SyntaxError{
			Pos:      token.Position{Line: 1, Column: 1},
			Found:    token.EndOfInput,
			Expected: []token.Kind{token.EndOfInput},
		}
	}
	for i, t := range p.tokens {
		last := i == len(p.tokens)-1
		if (t.Kind == token.EndOfInput) != last {
			if last {
				return &SyntaxError{
					Pos:      t.Pos,
					Found:    t.Kind,
					Lexeme:   t.Lexeme,
					Expected: []token.Kind{token.EndOfInput},
				}
			}
			// EndOfInput before the end: the rest is unreachable input
			next := p.tokens[i+1]
			return &TrailingInputError{Pos: next.Pos, Found: next.Kind, Lexeme: next.Lexeme}
		}
	}
	return nil
}

func (p *Parser) unexpected(nt Nonterminal, la token.Token) error {
	return &SyntaxError{
		Pos:         la.Pos,
		Found:       la.Kind,
		Lexeme:      la.Lexeme,
		Expected:    expectedAt(nt),
		Nonterminal: nt,
	}
}

func (p *Parser) enter(nt Nonterminal) {
	if p.logger == nil {
		return
	}
	la := p.tokens[p.k]
	p.logger.Trace("enter", mdwlog.Fields{
		"nonterminal": string(nt),
		"lookahead":   la.Kind.String(),
		"pos":         la.Pos.String(),
	})
}

func (p *Parser) trace(msg string, fields mdwlog.Fields) {
	if p.logger != nil {
		p.logger.Debug(msg, fields)
	}
}
