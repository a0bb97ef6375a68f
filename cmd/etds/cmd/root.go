package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/internal/history"
	"github.com/msto63/etds/internal/render"
	"github.com/msto63/etds/pkg/core/config"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	appConfig *config.Config
	logger    *mdwlog.Logger
)

// errReported is returned by commands that already wrote a diagnostic;
// Execute exits non-zero without printing it again.
var errReported = errors.New("translation failed")

var rootCmd = &cobra.Command{
	Use:   "etds",
	Short: "etds - predictive expression translator",
	Long: `etds translates arithmetic expressions over + - * / ( ), identifiers
and integer or decimal numbers into an abstract syntax tree and a symbol
table, using a predictive recursive-descent parser over the grammar

  E  -> T E'        E' -> + T E' | - T E' | ε
  T  -> F T'        T' -> * F T' | / F T' | ε
  F  -> ( E ) | id | num

Errors are reported as "<Kind> at <line>:<column>: <detail>".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command and prints unreported errors to stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./etds.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger = appConfig.Logger(cmd.ErrOrStderr())
	if verbose {
		logger.SetLevel(mdwlog.LevelDebug)
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func newEngine() *etds.Engine {
	return etds.NewEngine(etds.Options{
		Logger:         logger,
		MaxInputLength: appConfig.Lexer.MaxInputLength,
	})
}

func newRenderer() *render.Renderer {
	style, _ := render.ParseTreeStyle(appConfig.Render.Style)
	return render.New(render.Options{
		Style: style,
		Color: !noColor && !appConfig.Render.NoColor,
	})
}

// openHistory opens the configured store; it returns nil when history is
// disabled and force is false
func openHistory(force bool) (*history.Store, error) {
	if !appConfig.History.Enabled && !force {
		return nil, nil
	}
	return history.Open(history.Config{
		Path:   appConfig.History.Path,
		Logger: logger.WithField("component", "history"),
	})
}

// readExpression takes the expression from args, then from file, then from
// stdin. A trailing line break is dropped.
func readExpression(cmd *cobra.Command, args []string, file string) (string, error) {
	var text string
	switch {
	case len(args) > 0 && file != "":
		return "", errors.New("pass either an expression or --file, not both")
	case len(args) > 0:
		text = strings.Join(args, " ")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		text = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		text = string(data)
	}
	return strings.TrimRight(text, "\r\n"), nil
}

// compile runs the engine and records the run when history is enabled.
// On failure the diagnostic is written to stderr and errReported returned.
func compile(cmd *cobra.Command, source, input string) (*etds.Result, error) {
	res, err := newEngine().Compile(input)

	store, herr := openHistory(false)
	if herr != nil {
		logger.WarnWithErr("history unavailable", herr)
	}
	if store != nil {
		if herr := store.Record(cmd.Context(), history.NewRun(source, input, res, err)); herr != nil {
			logger.WarnWithErr("failed to record run", herr)
		}
		store.Close()
	}

	if err != nil {
		newRenderer().Diagnostic(cmd.ErrOrStderr(), input, err)
		return nil, errReported
	}
	return res, nil
}
