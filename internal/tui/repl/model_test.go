package repl

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/internal/history"
	"github.com/msto63/etds/internal/render"
)

func newTestModel(store *history.Store) Model {
	m := New(Config{
		Engine:   etds.NewEngine(etds.Options{}),
		Renderer: render.New(render.Options{Style: render.StyleASCII}),
		History:  store,
		Version:  "test",
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestCompileLine(t *testing.T) {
	m, _ := typeLine(t, newTestModel(nil), "a - b")

	entries := m.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Input != "a - b" || !e.OK {
		t.Errorf("entry = %+v", e)
	}
	want := "`-- -\n" +
		"    |-- Id(a)\n" +
		"    `-- Id(b)\n" +
		"\n" +
		"name=a, class=VAR, type=number, first=1:1\n" +
		"name=b, class=VAR, type=number, first=1:5\n"
	if e.Output != want {
		t.Errorf("Output =\n%s\nwant\n%s", e.Output, want)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "1 compiled") {
		t.Errorf("status bar missing counter:\n%s", m.View())
	}
}

func TestCompileErrorLine(t *testing.T) {
	m, _ := typeLine(t, newTestModel(nil), "(a + 1")

	e := m.Entries()[0]
	if e.OK {
		t.Fatal("entry should be a failure")
	}
	want := "SyntaxError at 1:7: expected RPAREN, found EOF\n  (a + 1\n        ^\n"
	if e.Output != want {
		t.Errorf("Output = %q, want %q", e.Output, want)
	}
	if m.failed != 1 || m.compiled != 0 {
		t.Errorf("counters = %d/%d", m.compiled, m.failed)
	}
}

func TestCommands(t *testing.T) {
	m := newTestModel(nil)

	m, _ = typeLine(t, m, ":grammar")
	if !strings.Contains(m.Entries()[0].Output, "F  -> ( E ) | id | num") {
		t.Errorf(":grammar output = %q", m.Entries()[0].Output)
	}

	m, _ = typeLine(t, m, ":tokens x*2")
	if out := m.Entries()[1].Output; !strings.Contains(out, "TIMES") || !strings.Contains(out, "EOF") {
		t.Errorf(":tokens output = %q", out)
	}

	m, _ = typeLine(t, m, ":bogus")
	if e := m.Entries()[2]; e.OK || !strings.Contains(e.Output, "unknown command") {
		t.Errorf(":bogus entry = %+v", e)
	}

	m, _ = typeLine(t, m, ":clear")
	if len(m.Entries()) != 0 {
		t.Errorf("entries after :clear = %d", len(m.Entries()))
	}

	_, cmd := typeLine(t, m, ":quit")
	if cmd == nil {
		t.Fatal(":quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error(":quit should quit")
	}
}

func TestEmptyLineIgnored(t *testing.T) {
	m, cmd := typeLine(t, newTestModel(nil), "   ")
	if len(m.Entries()) != 0 || cmd != nil {
		t.Errorf("blank line produced entries %v", m.Entries())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := newTestModel(nil).Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v returned no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v should quit", key)
		}
	}
}

func TestRecall(t *testing.T) {
	m := newTestModel(nil)
	m, _ = typeLine(t, m, "a")
	m, _ = typeLine(t, m, "b")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.input.Value() != "b" {
		t.Errorf("first Up = %q, want b", m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.input.Value() != "a" {
		t.Errorf("Up past oldest = %q, want a", m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.input.Value() != "" {
		t.Errorf("Down past newest = %q, want empty", m.input.Value())
	}
}

func TestRecordsHistory(t *testing.T) {
	store, err := history.Open(history.Config{Path: filepath.Join(t.TempDir(), "h.db")})
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	defer store.Close()

	m, cmd := typeLine(t, newTestModel(store), "x / 0")
	if cmd == nil {
		t.Fatal("expected a record command")
	}
	next, _ := m.Update(cmd())
	if next.(Model).lastErr != nil {
		t.Fatalf("record error = %v", next.(Model).lastErr)
	}

	runs, err := store.List(context.Background(), history.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Source != "repl" || runs[0].Input != "x / 0" || !runs[0].Success {
		t.Errorf("runs = %+v", runs)
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Config{})
	if m.View() != "Starting etds REPL..." {
		t.Errorf("View() = %q", m.View())
	}
}
