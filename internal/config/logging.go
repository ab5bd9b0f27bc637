package config

import (
	"github.com/rshade/ghgcalc/internal/logging"
)

// ToLoggingConfig converts the logging section for logging.NewLoggerWithPath.
// A configured file selects file output; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
