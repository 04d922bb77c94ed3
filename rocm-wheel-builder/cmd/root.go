package cmd

import (
	"os"

	"rocm-tools/go/pkg/buildlog"

	"github.com/spf13/cobra"
)

var (
	log buildlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rocm-wheel-builder",
	Short: "A CLI tool for building and staging ROCm JAX wheels.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = buildlog.Create("rocm-wheel-builder")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log.Logger != nil { // Check if logger was initialized
			log.Error("system", "stop", "error", "Failed to execute command", "error", err)
		}
		os.Exit(1)
	}
}
