// ============================================================================
// etds - Predictive Expression Translator
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive REPL
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/internal/tui/repl"
	"github.com/msto63/etds/pkg/core/version"
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"tui", "shell"},
	Short:   "Start the interactive translator",
	Long: `Start an interactive session. Every line is translated on Enter and
the tree and symbol table, or the diagnostic, are appended to the
scrollback.

Keys:
  Enter       translate the line
  Up/Down     recall earlier input
  PgUp/PgDn   scroll
  Esc/Ctrl+C  quit

Commands:
  :tokens <expr>, :grammar, :clear, :help, :quit`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	store, err := openHistory(false)
	if err != nil {
		logger.WarnWithErr("history unavailable", err)
	}
	if store != nil {
		defer store.Close()
	}

	// Log lines on stderr would tear the alternate screen
	if !verbose {
		logger = mdwlog.Discard()
	}

	m := repl.New(repl.Config{
		Engine:   newEngine(),
		Renderer: newRenderer(),
		History:  store,
		Version:  version.Version,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
