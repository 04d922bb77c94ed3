package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rocm-tools/go/pkg/rocm"

	"github.com/spf13/cobra"
)

var (
	buildRocmVersion    string
	buildPythonVersions string
	buildXlaPath        string
	buildWheelhouseDir  string
)

var buildCmd = &cobra.Command{
	Use:   "build <jax_path>",
	Short: "Builds jaxlib and jax wheels against a ROCm toolkit and stages them.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmdCobra *cobra.Command, args []string) {
		jaxPath := args[0]

		pythonVersions := strings.Split(buildPythonVersions, ",")
		for _, py := range pythonVersions {
			if _, err := rocm.CPyTag(py); err != nil {
				log.Error("config", "validate", "invalid", "Bad --python-versions entry", "version", py, "error", err)
				os.Exit(1)
			}
		}

		fmt.Printf("ROCM_VERSION=%s\n", buildRocmVersion)
		fmt.Printf("PYTHON_VERSIONS=%q\n", pythonVersions)
		fmt.Printf("JAX_PATH=%s\n", jaxPath)
		fmt.Printf("XLA_PATH=%s\n", buildXlaPath)

		ctx := context.Background()
		rocmPath := rocm.Path(buildRocmVersion)

		log.Info("rocm", "write", "progress", "Updating ROCm device targets", "path", rocmPath)
		if err := rocm.UpdateTargets(rocmPath, rocm.GPUDeviceTargets); err != nil {
			log.Error("rocm", "write", "error", "Failed to update ROCm targets", "path", rocmPath, "error", err)
			os.Exit(1)
		}

		for _, py := range pythonVersions {
			log.Info("build", "start", "progress", "Building jaxlib wheels", "python", py)
			wheelPaths, err := buildJaxlibWheels(ctx, jaxPath, rocmPath, py, buildXlaPath)
			if err != nil {
				log.Error("build", "execute", "failure", "jaxlib build failed", "python", py, "error", err)
				os.Exit(1)
			}
			for _, wheelPath := range wheelPaths {
				log.Info("repair", "start", "progress", "Repairing wheel", "wheel", wheelPath)
				if err := fixWheel(wheelPath, jaxPath); err != nil {
					log.Error("repair", "execute", "failure", "Wheel repair failed", "wheel", wheelPath, "error", err)
					os.Exit(1)
				}
			}
		}

		// build JAX wheel for completeness
		lastPy := pythonVersions[len(pythonVersions)-1]
		log.Info("build", "start", "progress", "Building jax wheel", "python", lastPy)
		jaxWheels, err := buildJaxWheel(ctx, jaxPath, lastPy)
		if err != nil {
			log.Error("build", "execute", "failure", "jax build failed", "error", err)
			os.Exit(1)
		}

		// The jax wheel is a non-platform wheel, so auditwheel would refuse
		// it; it just gets copied along with the jaxlib and plugin ones.
		// The jaxlib wheels are not staged here: the repair step has already
		// relocated and renamed them.
		for _, whl := range jaxWheels {
			dst := filepath.Join(buildWheelhouseDir, filepath.Base(whl))
			log.Info("stage", "copy", "progress", "Copying wheel into wheelhouse", "wheel", whl, "dest", buildWheelhouseDir)
			if err := copyFile(whl, dst); err != nil {
				log.Error("stage", "copy", "error", "Failed to copy wheel", "wheel", whl, "error", err)
				os.Exit(1)
			}
		}

		log.Info("build", "finish", "success", "All wheels built and staged.")
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildRocmVersion, "rocm-version", "6.1.1", "ROCM version to build JAX against.")
	// The "3.10.19" token mirrors the upstream build scripts' default as-is.
	buildCmd.Flags().StringVar(&buildPythonVersions, "python-versions", "3.10.19,3.12", "Comma separated CPython versions that wheels will be built and output for.")
	buildCmd.Flags().StringVar(&buildXlaPath, "xla-path", "", "Optional directory where XLA source is located to use instead of JAX builtin XLA.")
	buildCmd.Flags().StringVar(&buildWheelhouseDir, "wheelhouse", "/wheelhouse", "Directory the final jax wheels are copied into.")
}
