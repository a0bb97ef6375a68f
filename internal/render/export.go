package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/foundation/etds/ast"
	"github.com/msto63/etds/foundation/etds/symtab"
	"github.com/msto63/etds/foundation/etds/token"
)

// Format selects the encoding used by Export
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml and yml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q", s)
	}
}

// Node is the serializable form of an AST node
type Node struct {
	Type   string      `json:"type" yaml:"type"`
	Op     string      `json:"op,omitempty" yaml:"op,omitempty"`
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Value  interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	Line   int         `json:"line" yaml:"line"`
	Column int         `json:"column" yaml:"column"`
	Left   *Node       `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *Node       `json:"right,omitempty" yaml:"right,omitempty"`
}

// Token is the serializable form of a token
type Token struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// Document is the exported form of a translation result
type Document struct {
	Input   string         `json:"input" yaml:"input"`
	Tree    *Node          `json:"tree" yaml:"tree"`
	Symbols []symtab.Entry `json:"symbols" yaml:"symbols"`
	Tokens  []Token        `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// NewNode converts an AST into its serializable form
func NewNode(n ast.Node) *Node {
	pos := n.Position()
	out := &Node{Line: pos.Line, Column: pos.Column}
	switch n := n.(type) {
	case *ast.BinaryOp:
		out.Type = "binary"
		out.Op = string(n.Op)
		out.Left = NewNode(n.Left)
		out.Right = NewNode(n.Right)
	case *ast.Identifier:
		out.Type = "identifier"
		out.Name = n.Name
	case *ast.NumberLiteral:
		out.Type = "number"
		out.Value = n.Value.Interface()
	}
	return out
}

// NewTokens converts a token sequence into its serializable form
func NewTokens(tokens []token.Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = Token{Kind: t.Kind.String(), Text: t.Text(), Line: t.Pos.Line, Column: t.Pos.Column}
	}
	return out
}

// NewDocument builds the exported document; tokens are included on request
func NewDocument(res *etds.Result, withTokens bool) Document {
	doc := Document{
		Input:   res.Input,
		Tree:    NewNode(res.Tree),
		Symbols: res.Symbols.Sorted(),
	}
	if withTokens {
		doc.Tokens = NewTokens(res.Tokens)
	}
	return doc
}

// Export encodes the document of res as JSON or YAML
func Export(w io.Writer, res *etds.Result, format Format, withTokens bool) error {
	doc := NewDocument(res, withTokens)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("export does not support format %q", format)
	}
}
