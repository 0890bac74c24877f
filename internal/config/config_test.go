package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8501, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, "data/combined_data.csv", cfg.Data.SourceFile)
				assert.Equal(t, "fail", cfg.Data.InvalidHalfLife)
				assert.Equal(t, 18, cfg.Data.LocalNMin)
				assert.Equal(t, 30, cfg.Data.LocalNMax)
				assert.Equal(t, ',', cfg.Data.DelimiterRune())
				assert.Equal(t, "png", cfg.Charts.Format)
				assert.True(t, cfg.Telemetry.MetricsEnabled)
				assert.Equal(t, "info", cfg.Logging.Level)
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"NUCDASH_SERVER_PORT":               "9090",
				"NUCDASH_SERVER_READ_TIMEOUT":       "30s",
				"NUCDASH_SECURITY_ALLOWED_ORIGINS":  "http://example.com,https://example.com",
				"NUCDASH_DATA_SOURCE_FILE":          "/srv/nuclides.csv",
				"NUCDASH_DATA_INVALID_HALF_LIFE":    "drop",
				"NUCDASH_CHARTS_FORMAT":             "svg",
				"NUCDASH_LOGGING_LEVEL":             "DEBUG",
				"NUCDASH_SECURITY_RATE_LIMIT_BURST": "7",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://example.com", "https://example.com"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "/srv/nuclides.csv", cfg.Data.SourceFile)
				assert.Equal(t, "drop", cfg.Data.InvalidHalfLife)
				assert.Equal(t, "svg", cfg.Charts.Format)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 7, cfg.Security.RateLimit.Burst)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 7000
  shutdown_timeout: 5s
data:
  source_file: nuclides.csv
  delimiter: ";"
  local_n_min: 20
  local_n_max: 28
charts:
  prerender: false
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7000, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "nuclides.csv", cfg.Data.SourceFile)
				assert.Equal(t, ';', cfg.Data.DelimiterRune())
				assert.Equal(t, 20, cfg.Data.LocalNMin)
				assert.Equal(t, 28, cfg.Data.LocalNMax)
				assert.False(t, cfg.Charts.Prerender)
			},
		},
		{
			name: "env wins over file",
			env:  map[string]string{"NUCDASH_SERVER_PORT": "9999"},
			file: "server:\n  port: 7000\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9999, cfg.Server.Port)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"NUCDASH_SERVER_PORT": "99999"},
			wantErr: true,
		},
		{
			name:    "unparseable duration",
			env:     map[string]string{"NUCDASH_SERVER_READ_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "unknown half-life policy",
			env:     map[string]string{"NUCDASH_DATA_INVALID_HALF_LIFE": "clip"},
			wantErr: true,
		},
		{
			name:    "inverted local band",
			file:    "data:\n  local_n_min: 30\n  local_n_max: 18\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [port",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "Config.Server.Port",
		},
		{
			name:    "negative read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = -time.Second },
			wantErr: "Config.Server.ReadTimeout",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "Config.Security.AllowedOrigins",
		},
		{
			name:    "empty source file",
			mutate:  func(c *Config) { c.Data.SourceFile = "" },
			wantErr: "Config.Data.SourceFile",
		},
		{
			name:    "multi-character delimiter",
			mutate:  func(c *Config) { c.Data.Delimiter = ";;" },
			wantErr: "Config.Data.Delimiter",
		},
		{
			name:    "unsupported chart format",
			mutate:  func(c *Config) { c.Charts.Format = "gif" },
			wantErr: "Config.Charts.Format",
		},
		{
			name:    "zero render concurrency",
			mutate:  func(c *Config) { c.Charts.Concurrency = 0 },
			wantErr: "Config.Charts.Concurrency",
		},
		{
			name:    "unknown trace exporter",
			mutate:  func(c *Config) { c.Telemetry.TraceExporter = "jaeger" },
			wantErr: "Config.Telemetry.TraceExporter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_FillsLogFile(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "both"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8501", Default().Server.Addr())
	assert.Equal(t, "127.0.0.1:80", ServerConfig{Host: "127.0.0.1", Port: 80}.Addr())
}
