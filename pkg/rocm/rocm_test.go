package rocm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeToolkit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".info"), 0755))
	return dir
}

func TestUpdateTargetsWritesListAndMarker(t *testing.T) {
	dir := fakeToolkit(t)

	require.NoError(t, UpdateTargets(dir, "gfx90a gfx942"))

	data, err := os.ReadFile(filepath.Join(dir, "bin/target.lst"))
	require.NoError(t, err)
	assert.Equal(t, "gfx90a gfx942\n", string(data))
	assert.FileExists(t, filepath.Join(dir, ".info/version"))
}

func TestUpdateTargetsIsIdempotent(t *testing.T) {
	dir := fakeToolkit(t)

	// The marker keeps whatever content it already had.
	versionPath := filepath.Join(dir, ".info/version")
	require.NoError(t, os.WriteFile(versionPath, []byte("6.1.1-90\n"), 0644))

	require.NoError(t, UpdateTargets(dir, GPUDeviceTargets))
	first, err := os.ReadFile(filepath.Join(dir, "bin/target.lst"))
	require.NoError(t, err)

	require.NoError(t, UpdateTargets(dir, GPUDeviceTargets))
	second, err := os.ReadFile(filepath.Join(dir, "bin/target.lst"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	marker, err := os.ReadFile(versionPath)
	require.NoError(t, err)
	assert.Equal(t, "6.1.1-90\n", string(marker))
}

func TestUpdateTargetsUnwritableToolkit(t *testing.T) {
	// No bin/ or .info/ directories exist under an empty toolkit root.
	err := UpdateTargets(t.TempDir(), GPUDeviceTargets)
	assert.Error(t, err)
}

func TestCPyTag(t *testing.T) {
	for version, want := range map[string]string{
		"3.10":    "cp310",
		"3.10.19": "cp310",
		"3.12":    "cp312",
		"3.8.0":   "cp38",
	} {
		got, err := CPyTag(version)
		require.NoError(t, err, "version %s", version)
		assert.Equal(t, want, got)
	}

	for _, malformed := range []string{"", "3", "310", "three.ten", "3.x"} {
		_, err := CPyTag(malformed)
		assert.Error(t, err, "version %q should not parse", malformed)
	}
}

func TestPythonBinDir(t *testing.T) {
	assert.Equal(t, "/opt/python/cp310-cp310/bin", PythonBinDir("cp310"))
}
