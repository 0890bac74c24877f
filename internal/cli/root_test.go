package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nucdash/internal/config"
	"nucdash/internal/shared/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "nucdash", cmd.Use)
	assert.Contains(t, cmd.Long, "charge radii")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "prepare", "render"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
			assert.NotNil(t, sub.Flags().Lookup("source"))
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))

	render, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)
	format := render.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "png", format.DefValue)

	prepare, _, err := cmd.Find([]string{"prepare"})
	require.NoError(t, err)
	out := prepare.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
}

func TestRenderFormats(t *testing.T) {
	formats, err := renderFormats("svg")
	require.NoError(t, err)
	assert.Equal(t, []string{"svg"}, formats)

	formats, err = renderFormats("all")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"png", "svg"}, formats)

	_, err = renderFormats("gif")
	assert.Error(t, err)
}

// execute runs the root command with a quiet config rooted at a temp dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := t.TempDir()
	cfgFile := filepath.Join(base, "config.yaml")
	yaml := "logging:\n  level: error\npaths:\n  base_dir: " + base + "\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0o644))

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestPrepareCommand(t *testing.T) {
	source := testutil.WriteNuclideCSV(t, testutil.NuclideCSV())
	out := filepath.Join(t.TempDir(), "exports")

	stdout, err := execute(t, "prepare", "--source", source, "--out", out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		filepath.Join(out, config.GlobalCSVName),
		filepath.Join(out, config.LocalCSVName),
	}, lines)
	assert.NoFileExists(t, filepath.Join(out, config.ViewsXLSXName))
}

func TestPrepareCommand_XLSX(t *testing.T) {
	source := testutil.WriteNuclideCSV(t, testutil.NuclideCSV())
	out := t.TempDir()

	_, err := execute(t, "prepare", "--source", source, "--out", out, "--xlsx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, config.ViewsXLSXName))
}

func TestPrepareCommand_MissingSource(t *testing.T) {
	_, err := execute(t, "prepare", "--source", filepath.Join(t.TempDir(), "missing.csv"), "--out", t.TempDir())
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	source := testutil.WriteNuclideCSV(t, testutil.NuclideCSV())
	out := t.TempDir()

	stdout, err := execute(t, "render", "--source", source, "--out", out, "--format", "svg")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rendered 11 images")
	assert.FileExists(t, filepath.Join(out, "local_neutron_number.svg"))
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "render", "--format", "svg")
	assert.Error(t, err)
}
