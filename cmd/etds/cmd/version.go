package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/etds/pkg/core/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(w, version.Version)
			return
		}
		info := version.Get()
		fmt.Fprintf(w, "etds v%s\n", info.Version)
		fmt.Fprintf(w, "  Git Commit: %s\n", info.GitCommit)
		fmt.Fprintf(w, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(w, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(w, "  OS/Arch:    %s\n", info.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
}
