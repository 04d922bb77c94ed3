// Package rocm knows the filesystem layout of a ROCm toolkit installation
// and of the manylinux CPython interpreters it is built against.
package rocm

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// GPUDeviceTargets is the device list written into the toolkit before a
// build, covering the supported gfx architectures.
const GPUDeviceTargets = "gfx900 gfx906 gfx908 gfx90a gfx940 gfx941 gfx942 gfx1030 gfx1100"

// Path returns the installation root for the given ROCm version, preferring
// a versioned /opt/rocm-<version> directory and falling back to whatever the
// /opt/rocm symlink resolves to.
func Path(version string) string {
	path := "/opt/rocm-" + version
	if _, err := os.Stat(path); err == nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks("/opt/rocm")
	if err != nil {
		return "/opt/rocm"
	}
	return resolved
}

// UpdateTargets overwrites the toolkit's device-target list with targets and
// touches its version marker so downstream tooling sees a fresh install.
// The marker's content is left alone.
func UpdateTargets(rocmPath, targets string) error {
	targetPath := filepath.Join(rocmPath, "bin/target.lst")
	versionPath := filepath.Join(rocmPath, ".info/version")

	if err := os.WriteFile(targetPath, []byte(targets+"\n"), 0644); err != nil {
		return fmt.Errorf("writing target list: %w", err)
	}

	f, err := os.OpenFile(versionPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("touching version marker: %w", err)
	}
	f.Close()
	now := time.Now()
	return os.Chtimes(versionPath, now, now)
}

// CPyTag converts a CPython version like "3.10" or "3.10.19" to the
// manylinux interpreter tag, e.g. "cp310".
func CPyTag(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("malformed python version %q", version)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("malformed python version %q", version)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed python version %q", version)
	}
	return fmt.Sprintf("cp%d%d", major, minor), nil
}

// PythonBinDir returns the bin directory of the manylinux interpreter with
// the given tag.
func PythonBinDir(tag string) string {
	return fmt.Sprintf("/opt/python/%s-%s/bin", tag, tag)
}
