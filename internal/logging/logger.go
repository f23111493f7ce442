// Package logging wires charmbracelet/log into the CLI. Command setup
// attaches a logger to the command context with WithLogger; everything
// downstream pulls it back out with FromContext or falls back to the
// shared default.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // One process-wide logger keeps command output coherent.
var std = New("info")

// New builds a stderr logger at the given level. Timestamps and caller
// information are suppressed so the output stays stable across runs.
// Unrecognized levels fall back to info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, ReportCaller: false})
	logger.SetLevel(parseLevel(level))
	return logger
}

// parseLevel maps a level name onto a log level. Both "warn" and "warning"
// are accepted because both spellings show up in user configuration.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the shared logger.
func Default() *log.Logger {
	return std
}

// SetDefault replaces the shared logger. Tests use this to swap in a
// capture logger and restore the original afterwards.
func SetDefault(logger *log.Logger) {
	std = logger
}

// SetLevel adjusts the shared logger's level in place.
func SetLevel(level string) {
	std.SetLevel(parseLevel(level))
}
