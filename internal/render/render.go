// Package render formats translation results for terminals: the decorated
// tree, the symbol table, the token sequence, the grammar tables and
// one-line diagnostics with a caret under the offending column.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/foundation/etds/ast"
	"github.com/msto63/etds/foundation/etds/parser"
	"github.com/msto63/etds/foundation/etds/symtab"
	"github.com/msto63/etds/foundation/etds/token"
)

// TreeStyle selects the connector characters of Tree
type TreeStyle string

const (
	StyleUnicode TreeStyle = "unicode"
	StyleASCII   TreeStyle = "ascii"
)

// ParseTreeStyle accepts "unicode" and "ascii"
func ParseTreeStyle(s string) (TreeStyle, error) {
	switch TreeStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleUnicode, "":
		return StyleUnicode, nil
	case StyleASCII:
		return StyleASCII, nil
	default:
		return StyleUnicode, fmt.Errorf("unknown tree style %q", s)
	}
}

type connectors struct {
	last, middle, blank, bar string
}

var connectorSets = map[TreeStyle]connectors{
	StyleUnicode: {last: "└── ", middle: "├── ", blank: "    ", bar: "│   "},
	StyleASCII:   {last: "`-- ", middle: "|-- ", blank: "    ", bar: "|   "},
}

// EmptyTable is printed in place of an empty symbol table
const EmptyTable = "<empty>"

// Options configures a Renderer
type Options struct {
	Style TreeStyle
	Color bool
}

// Renderer writes human-readable output
type Renderer struct {
	conn   connectors
	color  bool
	styles Styles
}

// New creates a renderer; an unknown style falls back to unicode
func New(opts Options) *Renderer {
	conn, ok := connectorSets[opts.Style]
	if !ok {
		conn = connectorSets[StyleUnicode]
	}
	return &Renderer{conn: conn, color: opts.Color, styles: DefaultStyles()}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Tree writes n as an indented tree. The root is drawn as a last child,
// operators label inner nodes, and leaves print as Id(name) or Num(value).
func (r *Renderer) Tree(w io.Writer, n ast.Node) error {
	var sb strings.Builder
	r.writeTree(&sb, n, "", true)
	_, err := io.WriteString(w, sb.String())
	return err
}

// TreeString returns the output of Tree
func (r *Renderer) TreeString(n ast.Node) string {
	var sb strings.Builder
	r.writeTree(&sb, n, "", true)
	return sb.String()
}

func (r *Renderer) writeTree(sb *strings.Builder, n ast.Node, prefix string, last bool) {
	conn := r.conn.middle
	if last {
		conn = r.conn.last
	}
	sb.WriteString(r.paint(r.styles.Connector, prefix+conn))
	sb.WriteString(r.label(n))
	sb.WriteByte('\n')

	b, ok := n.(*ast.BinaryOp)
	if !ok {
		return
	}
	child := prefix + r.conn.bar
	if last {
		child = prefix + r.conn.blank
	}
	r.writeTree(sb, b.Left, child, false)
	r.writeTree(sb, b.Right, child, true)
}

func (r *Renderer) label(n ast.Node) string {
	switch n := n.(type) {
	case *ast.BinaryOp:
		return r.paint(r.styles.Operator, string(n.Op))
	case *ast.Identifier:
		return "Id(" + r.paint(r.styles.Identifier, n.Name) + ")"
	case *ast.NumberLiteral:
		return "Num(" + r.paint(r.styles.Number, n.Value.String()) + ")"
	default:
		return ast.Label(n)
	}
}

// Symbols writes one line per entry, sorted by name, or EmptyTable
func (r *Renderer) Symbols(w io.Writer, table *symtab.Table) error {
	if table == nil || table.Len() == 0 {
		_, err := fmt.Fprintln(w, r.paint(r.styles.Muted, EmptyTable))
		return err
	}
	for _, e := range table.Sorted() {
		if _, err := fmt.Fprintf(w, "name=%s, class=%s, type=%s, first=%s\n",
			r.paint(r.styles.Identifier, e.Name), e.Class, e.Type, e.FirstSeen()); err != nil {
			return err
		}
	}
	return nil
}

// Tokens writes the token sequence as an aligned table
func (r *Renderer) Tokens(w io.Writer, tokens []token.Token) error {
	for _, t := range tokens {
		pos := fmt.Sprintf("%-7s", t.Pos)
		kind := fmt.Sprintf("%-7s", t.Kind)
		line := strings.TrimRight(fmt.Sprintf("%s %s %s", r.paint(r.styles.Muted, pos), r.paint(r.styles.Operator, kind), t.Text()), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Report writes the Input, AST and Symbol table sections of a result
func (r *Renderer) Report(w io.Writer, res *etds.Result) error {
	var sb strings.Builder
	sb.WriteString(r.paint(r.styles.Header, "Input") + "\n")
	sb.WriteString(res.Input + "\n\n")
	sb.WriteString(r.paint(r.styles.Header, "AST") + "\n")
	r.writeTree(&sb, res.Tree, "", true)
	sb.WriteString("\n" + r.paint(r.styles.Header, "Symbol table") + "\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	return r.Symbols(w, res.Symbols)
}

// Diagnostic writes the one-line diagnostic of err. When input is not
// empty and err carries a position, the source line and a caret under the
// offending column follow.
func (r *Renderer) Diagnostic(w io.Writer, input string, err error) error {
	if err == nil {
		return nil
	}
	if _, werr := fmt.Fprintln(w, r.paint(r.styles.Error, etds.Diagnostic(err))); werr != nil {
		return werr
	}
	pos, ok := etds.PositionOf(err)
	if !ok || input == "" {
		return nil
	}
	source, caret, ok := Caret(input, pos)
	if !ok {
		return nil
	}
	_, werr := fmt.Fprintf(w, "  %s\n  %s\n", source, r.paint(r.styles.Error, caret))
	return werr
}

// Caret returns the source line of pos and a marker line whose '^' sits
// under pos.Column. Tabs are kept so the caret aligns in terminals.
func Caret(input string, pos token.Position) (string, string, bool) {
	lines := strings.Split(input, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return "", "", false
	}
	source := strings.TrimRight(lines[pos.Line-1], "\r")

	var marker strings.Builder
	col := 1
	for _, ch := range source {
		if col >= pos.Column {
			break
		}
		if ch == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
		col++
	}
	for ; col < pos.Column; col++ {
		marker.WriteByte(' ')
	}
	marker.WriteByte('^')
	return source, marker.String(), true
}

// Grammar writes the productions and the FIRST/FOLLOW tables
func (r *Renderer) Grammar(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(r.paint(r.styles.Header, "Grammar") + "\n")
	for _, p := range parser.Productions {
		sb.WriteString("  " + p + "\n")
	}
	sb.WriteString("\n" + r.paint(r.styles.Header, "FIRST / FOLLOW") + "\n")
	for _, nt := range parser.Nonterminals() {
		fmt.Fprintf(&sb, "  %-3s FIRST = %-16s FOLLOW = %s\n", nt, parser.First[nt], parser.Follow[nt])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
