package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
type Paths struct {
	BaseDir    string
	DataDir    string
	LogsDir    string
	ChartsDir  string
	ExportsDir string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	return NewPaths(PathsConfig{})
}

// NewPaths resolves configured directories. Relative directories are joined to BaseDir,
// which defaults to the directory holding the executable.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
		}
		base = filepath.Dir(exe)
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(dir, def string) string {
		if dir == "" {
			dir = def
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}

	return &Paths{
		BaseDir:    base,
		DataDir:    resolve(cfg.DataDir, DefaultDataDir),
		LogsDir:    resolve(cfg.LogsDir, DefaultLogsDir),
		ChartsDir:  resolve(cfg.ChartsDir, DefaultChartsDir),
		ExportsDir: resolve(cfg.ExportsDir, DefaultExportsDir),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir, p.ChartsDir, p.ExportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ResolveSource locates the dataset. Absolute paths and paths that exist relative to
// the working directory are used as is; anything else is looked up under BaseDir.
func (p *Paths) ResolveSource(file string) string {
	if filepath.IsAbs(file) || FileExists(file) {
		return file
	}
	return filepath.Join(p.BaseDir, file)
}

// GetChartPath returns the path of a rendered chart image
func (p *Paths) GetChartPath(id, format string) string {
	return filepath.Join(p.ChartsDir, id+"."+format)
}

// GetExportPath returns the path for an exported file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("logs", p.LogsDir),
			slog.String("charts", p.ChartsDir),
			slog.String("exports", p.ExportsDir),
		))
}
