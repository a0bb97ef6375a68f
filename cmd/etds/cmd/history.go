package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/etds/internal/history"
)

var (
	historyLimit     int
	historyFailed    bool
	historyOutput    string
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and maintain the compile history",
	Long: `Compile runs are recorded in a SQLite database when history is enabled
in the configuration ([history] enabled = true).`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(true)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), history.Filter{Limit: historyLimit, OnlyFailed: historyFailed})
		if err != nil {
			return err
		}
		if historyOutput != "text" {
			if runs == nil {
				runs = []*history.Run{}
			}
			return encode(cmd.OutOrStdout(), historyOutput, runs)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tSOURCE\tSTATUS\tINPUT")
		for _, r := range runs {
			status := "ok"
			if !r.Success {
				status = r.ErrorKind
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				r.Timestamp.Format("2006-01-02 15:04:05"), r.Source, status, oneLine(r.Input))
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(true)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		format := historyOutput
		if format == "text" {
			format = "yaml"
		}
		return encode(cmd.OutOrStdout(), format, run)
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(true)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if historyOutput != "text" {
			return encode(cmd.OutOrStdout(), historyOutput, stats)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Total:     %d\n", stats.Total)
		fmt.Fprintf(w, "Succeeded: %d\n", stats.Succeeded)
		fmt.Fprintf(w, "Failed:    %d\n", stats.Failed)
		for _, kind := range []string{"LexError", "SyntaxError", "TrailingInputError"} {
			if n := stats.ByKind[kind]; n > 0 {
				fmt.Fprintf(w, "  %-20s %d\n", kind, n)
			}
		}
		if stats.Succeeded > 0 {
			fmt.Fprintf(w, "Average:   %s\n", stats.AvgDuration)
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the retention period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(true)
		if err != nil {
			return err
		}
		defer store.Close()

		olderThan := historyOlderThan
		if olderThan <= 0 {
			olderThan = appConfig.History.Retention.Duration
		}
		n, err := store.Prune(cmd.Context(), olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d runs older than %s\n", n, olderThan)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyStatsCmd, historyPruneCmd)

	historyCmd.PersistentFlags().StringVarP(&historyOutput, "output", "o", "text", "output format: text, json or yaml")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyListCmd.Flags().BoolVar(&historyFailed, "failed", false, "only failed runs")
	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "age cutoff (default: history.retention)")
}

func encode(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
