package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	bundleWheelhouseDir   string
	bundleOutPath         string
	bundleExcludePatterns []string
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Archives the staged wheelhouse into a single tar.zst for shipping.",
	Run: func(cmdCobra *cobra.Command, args []string) {
		log.Info("archive", "pack", "progress", "Archiving wheelhouse", "dir", bundleWheelhouseDir)

		archiveBytes, err := createWheelhouseArchive(log, bundleWheelhouseDir, bundleExcludePatterns)
		if err != nil {
			log.Error("archive", "pack", "error", "Failed to archive wheelhouse", "dir", bundleWheelhouseDir, "error", err)
			os.Exit(1)
		}

		if err := os.WriteFile(bundleOutPath, archiveBytes, 0644); err != nil {
			log.Error("archive", "write", "error", "Failed to write bundle", "path", bundleOutPath, "error", err)
			os.Exit(1)
		}

		log.Info("archive", "pack", "success", "Wheelhouse bundle written", "path", bundleOutPath, "bytes", len(archiveBytes))
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.Flags().StringVar(&bundleWheelhouseDir, "wheelhouse", "/wheelhouse", "Directory containing the staged wheels.")
	bundleCmd.Flags().StringVarP(&bundleOutPath, "out", "o", "wheels.tar.zst", "Path for the output bundle.")
	bundleCmd.Flags().StringArrayVar(&bundleExcludePatterns, "exclude", []string{}, "Glob patterns to exclude from the bundle.")
}
