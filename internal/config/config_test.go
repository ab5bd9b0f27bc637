package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/logging"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/ghgcalc-home")

	cfg := New()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, logging.FormatConsole, cfg.Logging.Format)
	assert.Equal(t, "ulid", cfg.Calculator.IDFormat)
	assert.Equal(t, 4, cfg.Calculator.Workers)
	assert.Equal(t, 100, cfg.Calculator.BatchSize)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, filepath.Join("/tmp/ghgcalc-home", "config.yaml"), cfg.Path())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
logging:
  level: warn
calculator:
  id_format: uuid
  workers: 8
output:
  default_format: json
`), 0o600))
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvFactorsFile, "/data/factors.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level, "env wins over file")
	assert.Equal(t, logging.FormatConsole, cfg.Logging.Format, "unset keys keep defaults")
	assert.Equal(t, "uuid", cfg.Calculator.IDFormat)
	assert.Equal(t, 8, cfg.Calculator.Workers)
	assert.Equal(t, 100, cfg.Calculator.BatchSize)
	assert.Equal(t, "/data/factors.yaml", cfg.Calculator.FactorsFile)
	assert.Equal(t, FormatJSON, cfg.Output.DefaultFormat)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvIDFormat, "uuid")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "uuid", cfg.Calculator.IDFormat)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [\n"), 0o600))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSave_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(EnvHome, dir)

	cfg := New()
	cfg.Output.Locale = "de"
	cfg.Calculator.FactorsFile = "/x.yaml"
	require.NoError(t, cfg.Save())

	loaded, err := LoadFrom(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "de", loaded.Output.Locale)
	assert.Equal(t, "/x.yaml", loaded.Calculator.FactorsFile)

	assert.Error(t, (&Config{}).Save())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "json logging", mutate: func(c *Config) { c.Logging.Format = "json" }},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, errMsg: "logging.format"},
		{name: "bad id format", mutate: func(c *Config) { c.Calculator.IDFormat = "seq" }, errMsg: "calculator.id_format"},
		{name: "zero workers", mutate: func(c *Config) { c.Calculator.Workers = 0 }, errMsg: "calculator.workers"},
		{name: "huge batch", mutate: func(c *Config) { c.Calculator.BatchSize = 5000 }, errMsg: "calculator.batch_size"},
		{name: "bad output", mutate: func(c *Config) { c.Output.DefaultFormat = "csv" }, errMsg: "output.default_format"},
		{name: "negative precision", mutate: func(c *Config) { c.Output.Precision = -1 }, errMsg: "output.precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Equal(t, "debug", got.Level)

	lc.File = "/var/log/ghgcalc.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/var/log/ghgcalc.log", got.File)
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, GetGlobalConfig())

	other := New()
	SetGlobalConfig(other)
	assert.Same(t, other, GetGlobalConfig())
}

func TestEnsureLogDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "cfg")
	t.Setenv(EnvHome, home)

	cfg := New()
	require.NoError(t, cfg.EnsureLogDir())
	cfg.Logging.File = filepath.Join(home, "logs", "ghgcalc.log")
	require.NoError(t, cfg.EnsureLogDir())
	_, err := os.Stat(filepath.Join(home, "logs"))
	assert.NoError(t, err)
}
