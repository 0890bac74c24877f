package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.BaseDir))
	assert.Equal(t, filepath.Join(paths.BaseDir, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(paths.BaseDir, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(paths.BaseDir, "charts"), paths.ChartsDir)
	assert.Equal(t, filepath.Join(paths.BaseDir, "exports"), paths.ExportsDir)
}

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	paths, err := NewPaths(PathsConfig{
		BaseDir:   base,
		ChartsDir: "static/img",
		LogsDir:   abs,
	})
	require.NoError(t, err)

	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "static", "img"), paths.ChartsDir)
	assert.Equal(t, abs, paths.LogsDir)
	assert.Equal(t, filepath.Join(base, "static", "img", "global-mass-number.png"), paths.GetChartPath("global-mass-number", "png"))
	assert.Equal(t, filepath.Join(base, "exports", "views.xlsx"), paths.GetExportPath(ViewsXLSXName))
	assert.Equal(t, filepath.Join(abs, "nucdash.log"), paths.GetLogPath("nucdash.log"))
}

func TestEnsureDirectories(t *testing.T) {
	paths, err := NewPaths(PathsConfig{BaseDir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())
	for _, dir := range []string{paths.DataDir, paths.LogsDir, paths.ChartsDir, paths.ExportsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent
	assert.NoError(t, paths.EnsureDirectories())
}

func TestResolveSource(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(PathsConfig{BaseDir: base})
	require.NoError(t, err)

	abs := filepath.Join(base, "data", "combined_data.csv")
	assert.Equal(t, abs, paths.ResolveSource(abs))
	assert.Equal(t, filepath.Join(base, "data", "missing.csv"), paths.ResolveSource(filepath.Join("data", "missing.csv")))
}

func TestFileExists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(file+".missing"))
}
