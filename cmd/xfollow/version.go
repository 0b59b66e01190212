package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xfollow %s (commit: %s, built: %s, %s)\n", version, gitCommit, buildDate, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
