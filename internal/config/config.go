// Package config loads ghgcalc's YAML configuration from the config directory,
// applies GHGCALC_* environment overrides and optional overlay files, and
// bridges the logging section to the logging package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/engine/batch"
	"github.com/rshade/ghgcalc/internal/logging"
)

// Environment variables read by Load.
const (
	EnvHome        = "GHGCALC_HOME"
	EnvLogLevel    = "GHGCALC_LOG_LEVEL"
	EnvLogFormat   = "GHGCALC_LOG_FORMAT"
	EnvFactorsFile = "GHGCALC_FACTORS_FILE"
	EnvIDFormat    = "GHGCALC_ID_FORMAT"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const (
	configFileName   = "config.yaml"
	defaultDirName   = ".ghgcalc"
	defaultPrecision = 2
	defaultWorkers   = 4
	outputTypeFile   = logging.OutputFile
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full configuration file.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"    json:"logging"`
	Calculator CalculatorConfig `yaml:"calculator" json:"calculator"`
	Output     OutputConfig     `yaml:"output"     json:"output"`

	// path is where the config was loaded from or will be saved to.
	path string
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CalculatorConfig configures factor loading, IDs and batch execution.
type CalculatorConfig struct {
	// FactorsFile is an extra catalog loaded on top of the built-in factors.
	FactorsFile string `yaml:"factors_file,omitempty" json:"factors_file,omitempty"`
	IDFormat    string `yaml:"id_format"              json:"id_format"`
	Workers     int    `yaml:"workers"                json:"workers"`
	BatchSize   int    `yaml:"batch_size"             json:"batch_size"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
	Locale        string `yaml:"locale"         json:"locale"`
}

// New returns the default configuration, located in the config directory.
func New() *Config {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Calculator: CalculatorConfig{
			IDFormat:  emissions.IDFormatULID,
			Workers:   defaultWorkers,
			BatchSize: batch.DefaultBatchSize,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
			Locale:        "en",
		},
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.path = filepath.Join(dir, configFileName)
	}
	return cfg
}

// Load reads the config file from the config directory, if it exists, and
// applies environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := New()
	if cfg.path != "" {
		if err := cfg.loadFile(cfg.path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom reads the config at path and applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := New()
	cfg.path = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvFactorsFile); v != "" {
		c.Calculator.FactorsFile = v
	}
	if v := os.Getenv(EnvIDFormat); v != "" {
		c.Calculator.IDFormat = v
	}
}

// Path returns the file the config is bound to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config as YAML to its path, creating the directory.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.path, err)
	}
	return nil
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON, "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}
	if _, err := emissions.IDGeneratorFor(c.Calculator.IDFormat); err != nil {
		errs = append(errs, fmt.Errorf("calculator.id_format: %w", err))
	}
	if c.Calculator.Workers < 1 {
		errs = append(errs, fmt.Errorf("calculator.workers must be at least 1, got %d", c.Calculator.Workers))
	}
	if c.Calculator.BatchSize < batch.MinBatchSize || c.Calculator.BatchSize > batch.MaxBatchSize {
		errs = append(errs, fmt.Errorf("calculator.batch_size must be between %d and %d, got %d",
			batch.MinBatchSize, batch.MaxBatchSize, c.Calculator.BatchSize))
	}
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		errs = append(errs, fmt.Errorf("output.default_format %q must be table, json or ndjson",
			c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 {
		errs = append(errs, fmt.Errorf("output.precision must not be negative, got %d", c.Output.Precision))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
