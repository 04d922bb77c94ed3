package cmd

import (
	"os"
	"path/filepath"

	"rocm-tools/go/pkg/rocm"

	"github.com/magefile/mage/sh"
)

// fixwheelPython pins the interpreter used for wheel repair. auditwheel 6
// needs python >= 3.8, which some of the build interpreters predate, so the
// repair always runs under this CPython regardless of the build version.
const fixwheelPython = "cp310"

// fixWheel installs auditwheel into the repair interpreter and runs the
// fixwheel script from the JAX tree against the built wheel. Both steps are
// exit-code-only; any nonzero exit is fatal.
func fixWheel(wheelPath, jaxPath string) error {
	env := map[string]string{
		"PATH": rocm.PythonBinDir(fixwheelPython) + ":" + os.Getenv("PATH"),
	}

	if err := sh.RunWithV(env, "pip", "install", "auditwheel>=6"); err != nil {
		return err
	}

	fixwheelScript := filepath.Join(jaxPath, "build/rocm/tools/fixwheel.py")
	return sh.RunWithV(env, "python", fixwheelScript, wheelPath)
}
