package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// contextKey is unexported so no other package can collide with it.
type contextKey struct{}

//nolint:gochecknoglobals // Context keys are package-level by convention.
var loggerKey contextKey

// WithLogger attaches a logger to ctx. The root command stores the
// configured logger here so every subcommand sees the same one.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by WithLogger. Contexts without
// one, including nil contexts, yield the shared default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
