package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

//nolint:gochecknoglobals // Process-wide configuration singleton.
var (
	globalConfig   *Config
	globalConfigMu sync.Mutex
)

// GetGlobalConfig returns the process configuration, loading it on first use.
// A config file that fails to load falls back to defaults; callers that need
// the error use Load directly.
func GetGlobalConfig() *Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = New()
			cfg.applyEnv()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobalConfig replaces the process configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalConfigForTest drops the cached configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetConfigDir returns $GHGCALC_HOME, or ~/.ghgcalc when unset.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, defaultDirName), nil
}

// EnsureLogDir creates the parent directory of the configured log file, if any.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
