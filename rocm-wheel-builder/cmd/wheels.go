package cmd

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"rocm-tools/go/pkg/procscan"
	"rocm-tools/go/pkg/rocm"
)

// pythonBin is the interpreter the build commands run under; resolved via
// the PATH overlay so the per-version /opt/python bin dir wins. Overridable
// in tests.
var pythonBin = "python"

// The build tools announce their artifacts with fixed status lines near the
// end of their output; bazel's lands on stderr, python -m build's on stdout.
var (
	jaxlibWheelPattern = regexp.MustCompile(`Output wheel: (.+)\n`)
	jaxWheelPattern    = regexp.MustCompile(`Successfully built jax-.+ and (jax-.+\.whl)\n`)
)

// releaseEnv returns a fresh copy of the parent environment with the release
// flags set and the given interpreter bin dir prepended to PATH. The parent
// environment is never mutated.
func releaseEnv(pyBinDir string) []string {
	env := append([]string{}, os.Environ()...)
	env = append(env,
		"JAX_RELEASE=1",
		"JAXLIB_RELEASE=1",
		"PATH="+pyBinDir+":"+os.Getenv("PATH"),
	)
	return env
}

// buildJaxlibWheels runs the bazel-driven jaxlib build for one CPython
// version and returns the produced wheel paths scraped from its stderr.
func buildJaxlibWheels(ctx context.Context, jaxPath, rocmPath, pythonVersion, xlaPath string) ([]string, error) {
	argv := []string{
		pythonBin,
		"build/build.py",
		"--enable_rocm",
		"--build_gpu_plugin",
		"--gpu_plugin_rocm_version=60",
		"--rocm_path=" + rocmPath,
	}
	if xlaPath != "" {
		argv = append(argv, "--bazel_options=--override_repository=xla="+xlaPath)
	}

	cpy, err := rocm.CPyTag(pythonVersion)
	if err != nil {
		return nil, err
	}

	return procscan.Run(ctx, log, procscan.Spec{
		Argv:    argv,
		Env:     releaseEnv(rocm.PythonBinDir(cpy)),
		Dir:     jaxPath,
		Capture: procscan.Stderr,
		Pattern: jaxlibWheelPattern,
	})
}

// buildJaxWheel builds the pure-python jax wheel and returns the produced
// wheel paths resolved under the conventional dist/ output directory.
func buildJaxWheel(ctx context.Context, jaxPath, pythonVersion string) ([]string, error) {
	cpy, err := rocm.CPyTag(pythonVersion)
	if err != nil {
		return nil, err
	}

	wheels, err := procscan.Run(ctx, log, procscan.Spec{
		Argv:    []string{pythonBin, "-m", "build"},
		Env:     releaseEnv(rocm.PythonBinDir(cpy)),
		Dir:     jaxPath,
		Capture: procscan.Stdout,
		Pattern: jaxWheelPattern,
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(wheels))
	for _, whl := range wheels {
		paths = append(paths, filepath.Join(jaxPath, "dist", whl))
	}
	return paths, nil
}
