// ============================================================================
// etds - Predictive Expression Translator
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model that compiles one expression per line and
//              shows the tree, symbol table or diagnostic in a scrollback
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/internal/history"
	"github.com/msto63/etds/internal/render"
)

// Commands understood besides expressions
const (
	CmdQuit    = ":quit"
	CmdClear   = ":clear"
	CmdGrammar = ":grammar"
	CmdTokens  = ":tokens"
	CmdHelp    = ":help"
)

const helpText = `Enter an expression over + - * / ( ) identifiers and numbers.
  :tokens <expr>  show the token sequence
  :grammar        show productions and FIRST/FOLLOW sets
  :clear          clear the scrollback
  :quit           leave (also Esc or Ctrl+C)
  Up/Down recall earlier input, PgUp/PgDn scroll`

// Config holds REPL configuration
type Config struct {
	Engine   *etds.Engine
	Renderer *render.Renderer
	History  *history.Store // optional
	Version  string
}

// Entry is one input and the output it produced
type Entry struct {
	Input  string
	Output string
	OK     bool
}

// recordedMsg reports the outcome of storing a run
type recordedMsg struct {
	err error
}

// Model is the Bubbletea model of the REPL
type Model struct {
	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	entries []Entry
	recall  []string
	cursor  int

	compiled int
	failed   int
	lastErr  error

	engine   *etds.Engine
	renderer *render.Renderer
	store    *history.Store
	version  string
}

// New creates a REPL model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = PromptStyle.Render("etds> ")
	ti.Placeholder = "a + b * 2"
	ti.CharLimit = 4096
	ti.Focus()

	if cfg.Engine == nil {
		cfg.Engine = etds.NewEngine(etds.Options{})
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New(render.Options{Style: render.StyleUnicode, Color: true})
	}

	return Model{
		input:    ti,
		engine:   cfg.Engine,
		renderer: cfg.Renderer,
		store:    cfg.History,
		version:  cfg.Version,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Entries returns the scrollback
func (m Model) Entries() []Entry {
	return m.entries
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyUp:
			m.recallStep(-1)
			return m, nil

		case tea.KeyDown:
			m.recallStep(1)
			return m, nil

		case tea.KeyPgUp:
			m.viewport.ViewUp()
			return m, nil

		case tea.KeyPgDown:
			m.viewport.ViewDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + blank line
		footerHeight := 4 // Input box + status bar
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 10
		m.updateViewportContent()

	case recordedMsg:
		m.lastErr = msg.err
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles Enter: commands first, then compilation
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	m.recall = append(m.recall, line)
	m.cursor = len(m.recall)

	switch {
	case line == CmdQuit || line == ":q":
		return m, tea.Quit

	case line == CmdClear:
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case line == CmdHelp:
		m.append(Entry{Input: line, Output: helpText, OK: true})
		return m, nil

	case line == CmdGrammar:
		var sb strings.Builder
		m.renderer.Grammar(&sb)
		m.append(Entry{Input: line, Output: sb.String(), OK: true})
		return m, nil

	case strings.HasPrefix(line, CmdTokens+" "):
		expr := strings.TrimSpace(strings.TrimPrefix(line, CmdTokens))
		res, err := m.engine.Compile(expr)
		var sb strings.Builder
		if err != nil {
			m.renderer.Diagnostic(&sb, expr, err)
		} else {
			m.renderer.Tokens(&sb, res.Tokens)
		}
		m.append(Entry{Input: line, Output: sb.String(), OK: err == nil})
		return m, nil

	case strings.HasPrefix(line, ":"):
		m.append(Entry{Input: line, Output: fmt.Sprintf("unknown command %s, try %s", line, CmdHelp)})
		return m, nil
	}

	res, err := m.engine.Compile(line)
	var sb strings.Builder
	if err != nil {
		m.failed++
		m.renderer.Diagnostic(&sb, line, err)
	} else {
		m.compiled++
		m.renderer.Tree(&sb, res.Tree)
		sb.WriteString("\n")
		m.renderer.Symbols(&sb, res.Symbols)
	}
	m.append(Entry{Input: line, Output: sb.String(), OK: err == nil})

	return m, m.record(history.NewRun("repl", line, res, err))
}

// record stores run in the background when history is enabled
func (m Model) record(run *history.Run) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return recordedMsg{err: store.Record(ctx, run)}
	}
}

func (m *Model) append(e Entry) {
	m.entries = append(m.entries, e)
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

// recallStep moves through earlier input; stepping past the newest entry
// clears the line
func (m *Model) recallStep(delta int) {
	if len(m.recall) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.recall) {
		m.cursor = len(m.recall)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.recall[m.cursor])
	m.input.CursorEnd()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
}

func (m Model) transcript() string {
	if len(m.entries) == 0 {
		return SubtitleStyle.Render("Type an expression and press Enter, " + CmdHelp + " for commands.")
	}
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(PromptStyle.Render("» ") + EchoStyle.Render(e.Input) + "\n")
		b.WriteString(strings.TrimRight(e.Output, "\n") + "\n")
	}
	return b.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Starting etds REPL..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(BoxStyle.Width(max(m.width-2, 10)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("etds")
	sub := SubtitleStyle.Render(" predictive expression translator " + m.version)
	return title + sub
}

func (m Model) renderStatusBar() string {
	ok := StatusOKStyle.Render(fmt.Sprintf("%d compiled", m.compiled))
	bad := StatusErrorStyle.Render(fmt.Sprintf("%d failed", m.failed))
	hist := "history off"
	if m.store != nil {
		hist = "history on"
		if m.lastErr != nil {
			hist = ErrorStyle.Render("history error: " + m.lastErr.Error())
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, ok, "  ", bad, "  ", hist)
	help := HelpStyle.Render("  Esc quit · :help")
	return StatusBarStyle.Width(max(m.width, 10)).Render(left + help)
}
