// File: symtab.go
// Title: Symbol Table
// Description: Implements the append-only symbol table populated by the
//              parser. Each distinct identifier gets one entry holding the
//              position of its first occurrence.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial symbol table implementation

package symtab

import (
	"fmt"
	"sort"
)

const (
	// ClassVar is the only symbol class the grammar can produce
	ClassVar = "VAR"

	// TypeNumber is the only declared type the grammar can produce
	TypeNumber = "number"
)

// Entry describes one distinct identifier
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Class       string `json:"class" yaml:"class"`
	Type        string `json:"type" yaml:"type"`
	FirstLine   int    `json:"first_line" yaml:"first_line"`
	FirstColumn int    `json:"first_column" yaml:"first_column"`
}

// FirstSeen returns "line:column" of the first occurrence
func (e Entry) FirstSeen() string {
	return fmt.Sprintf("%d:%d", e.FirstLine, e.FirstColumn)
}

// Table maps identifier names to entries. Entries are never removed and
// never updated after insertion. A Table is not safe for concurrent use.
type Table struct {
	entries map[string]Entry
}

// New creates an empty table
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// InsertIfAbsent returns the existing entry for name unchanged, or creates,
// stores and returns a new one positioned at line:column.
func (t *Table) InsertIfAbsent(name string, line, column int) Entry {
	if e, ok := t.entries[name]; ok {
		return e
	}
	e := Entry{
		Name:        name,
		Class:       ClassVar,
		Type:        TypeNumber,
		FirstLine:   line,
		FirstColumn: column,
	}
	t.entries[name] = e
	return e
}

// Lookup returns the entry for name
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Entries returns an unordered snapshot of all entries
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

// Sorted returns all entries ordered by name, for stable reporting
func (t *Table) Sorted() []Entry {
	out := t.Entries()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of distinct names
func (t *Table) Len() int {
	return len(t.entries)
}
