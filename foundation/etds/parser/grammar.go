// File: grammar.go
// Title: Grammar FIRST/FOLLOW Tables
// Description: Constant FIRST and FOLLOW sets of the left-recursion-free
//              expression grammar. The parser selects productions by testing
//              the lookahead token for membership in these sets.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial grammar tables

package parser

import (
	"strings"

	"github.com/msto63/etds/foundation/etds/token"
)

// Nonterminal names a grammar non-terminal
type Nonterminal string

const (
	NtE      Nonterminal = "E"
	NtEPrime Nonterminal = "E'"
	NtT      Nonterminal = "T"
	NtTPrime Nonterminal = "T'"
	NtF      Nonterminal = "F"
)

// Nonterminals returns the non-terminals in grammar order
func Nonterminals() []Nonterminal {
	return []Nonterminal{NtE, NtEPrime, NtT, NtTPrime, NtF}
}

// Productions lists the grammar in display form
var Productions = []string{
	"E  -> T E'",
	"E' -> + T E' | - T E' | ε",
	"T  -> F T'",
	"T' -> * F T' | / F T' | ε",
	"F  -> ( E ) | id | num",
}

// Set is a FIRST or FOLLOW set: terminal kinds plus the ε marker
type Set struct {
	Kinds   []token.Kind
	Epsilon bool
}

// Contains reports whether k is a member of the set
func (s Set) Contains(k token.Kind) bool {
	for _, m := range s.Kinds {
		if m == k {
			return true
		}
	}
	return false
}

// String renders the set with grammar symbols, e.g. { (, id, num }
func (s Set) String() string {
	parts := make([]string, 0, len(s.Kinds)+1)
	for _, k := range s.Kinds {
		parts = append(parts, k.Symbol())
	}
	if s.Epsilon {
		parts = append(parts, "ε")
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// First holds the FIRST set of every non-terminal
var First = map[Nonterminal]Set{
	NtE:      {Kinds: []token.Kind{token.LParen, token.Identifier, token.Number}},
	NtEPrime: {Kinds: []token.Kind{token.Plus, token.Minus}, Epsilon: true},
	NtT:      {Kinds: []token.Kind{token.LParen, token.Identifier, token.Number}},
	NtTPrime: {Kinds: []token.Kind{token.Times, token.Divide}, Epsilon: true},
	NtF:      {Kinds: []token.Kind{token.LParen, token.Identifier, token.Number}},
}

// Follow holds the FOLLOW set of every non-terminal
var Follow = map[Nonterminal]Set{
	NtE:      {Kinds: []token.Kind{token.RParen, token.EndOfInput}},
	NtEPrime: {Kinds: []token.Kind{token.RParen, token.EndOfInput}},
	NtT:      {Kinds: []token.Kind{token.Plus, token.Minus, token.RParen, token.EndOfInput}},
	NtTPrime: {Kinds: []token.Kind{token.Plus, token.Minus, token.RParen, token.EndOfInput}},
	NtF:      {Kinds: []token.Kind{token.Times, token.Divide, token.Plus, token.Minus, token.RParen, token.EndOfInput}},
}

// InFirst reports whether k can begin a derivation of nt
func InFirst(nt Nonterminal, k token.Kind) bool {
	return First[nt].Contains(k)
}

// InFollow reports whether k can immediately follow nt
func InFollow(nt Nonterminal, k token.Kind) bool {
	return Follow[nt].Contains(k)
}

// expectedAt returns the kinds acceptable as lookahead when nt is active:
// its FIRST terminals, plus its FOLLOW set when nt derives ε.
func expectedAt(nt Nonterminal) []token.Kind {
	first := First[nt]
	out := append([]token.Kind(nil), first.Kinds...)
	if first.Epsilon {
		out = append(out, Follow[nt].Kinds...)
	}
	return out
}
