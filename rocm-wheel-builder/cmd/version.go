package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"  // Default version
var Commit = "none"  // Default commit hash
var Date = "unknown" // Default date

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rocm-wheel-builder",
	Run: func(cmd *cobra.Command, args []string) {
		log.Info("system", "init", "info", "rocm-wheel-builder version information", "version", Version, "commit", Commit, "date", Date)
		// Also print to stdout for easy human consumption / scripting
		fmt.Printf("rocm-wheel-builder version %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
