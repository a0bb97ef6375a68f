package cmd

import (
	"github.com/spf13/cobra"
)

var inspectFile string

var tokensCmd = &cobra.Command{
	Use:   "tokens [expression]",
	Short: "Print the token sequence of an expression",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readExpression(cmd, args, inspectFile)
		if err != nil {
			return err
		}
		res, err := compile(cmd, "cli", input)
		if err != nil {
			return err
		}
		return newRenderer().Tokens(cmd.OutOrStdout(), res.Tokens)
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols [expression]",
	Short: "Print the symbol table of an expression",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readExpression(cmd, args, inspectFile)
		if err != nil {
			return err
		}
		res, err := compile(cmd, "cli", input)
		if err != nil {
			return err
		}
		return newRenderer().Symbols(cmd.OutOrStdout(), res.Symbols)
	},
}

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Print the grammar with its FIRST and FOLLOW sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newRenderer().Grammar(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd, symbolsCmd, grammarCmd)

	tokensCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "read the expression from a file")
	symbolsCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "read the expression from a file")
}
