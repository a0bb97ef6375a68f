package cmd

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/internal/render"
	"github.com/msto63/etds/internal/watch"
)

var (
	parseFile   string
	parseOutput string
	parseTokens bool
	parseWatch  bool
)

var parseCmd = &cobra.Command{
	Use:     "parse [expression]",
	Aliases: []string{"compile"},
	Short:   "Translate an expression into its tree and symbol table",
	Long: `Translate one expression and print the input, the abstract syntax tree
and the symbol table. The expression is taken from the arguments, from
--file, or from standard input.

On a lexical, syntax or trailing-input error the diagnostic and a caret
under the offending column are written to stderr and the exit code is 1.

Examples:
  etds parse "a + b * 2"
  echo "(x - 1) / y" | etds parse -o json
  etds parse --file expr.txt --watch`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "read the expression from a file")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "text", "output format: text, json or yaml")
	parseCmd.Flags().BoolVar(&parseTokens, "tokens", false, "include the token sequence")
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "recompile whenever --file changes")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(parseOutput)
	if err != nil {
		return err
	}

	if parseWatch {
		if parseFile == "" || len(args) > 0 {
			return errors.New("--watch needs --file and no expression argument")
		}
		return watchFile(cmd, format)
	}

	input, err := readExpression(cmd, args, parseFile)
	if err != nil {
		return err
	}
	res, err := compile(cmd, "cli", input)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), res, format)
}

func writeResult(w io.Writer, res *etds.Result, format render.Format) error {
	if format != render.FormatText {
		return render.Export(w, res, format, parseTokens)
	}
	r := newRenderer()
	if err := r.Report(w, res); err != nil {
		return err
	}
	if parseTokens {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tokens")
		return r.Tokens(w, res.Tokens)
	}
	return nil
}

func watchFile(cmd *cobra.Command, format render.Format) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	return watch.File(ctx, parseFile, watch.Options{Logger: logger}, func(content string) {
		if format == render.FormatText {
			fmt.Fprintf(out, "--- %s\n", parseFile)
		}
		res, err := compile(cmd, "watch", strings.TrimRight(content, "\r\n"))
		if err != nil {
			return
		}
		if err := writeResult(out, res, format); err != nil {
			logger.WarnWithErr("failed to write result", err)
		}
	})
}
