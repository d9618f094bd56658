package swgl

import "log/slog"

// Defaults for context options.
const (
	DefaultMaxTextureSize = 16384
	DefaultTextureUnits   = 16
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	ctx := swgl.NewContext(
//	    swgl.WithMaxTextureSize(4096),
//	    swgl.WithDelayedClear(false),
//	)
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	logger         *slog.Logger
	maxTextureSize int
	delayedClear   bool
	textureUnits   int
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		maxTextureSize: DefaultMaxTextureSize,
		delayedClear:   true,
		textureUnits:   DefaultTextureUnits,
	}
}

// WithLogger overrides the package logger for one context.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithMaxTextureSize limits texture width and height. Non-positive values
// keep the default.
func WithMaxTextureSize(n int) ContextOption {
	return func(o *contextOptions) {
		if n > 0 {
			o.maxTextureSize = n
		}
	}
}

// WithDelayedClear enables or disables delayed full-surface clears.
//
// With delayed clears (the default) a Clear covering a whole color
// attachment only records the clear value; each row is written the first
// time a draw or readback touches it, and spans that overwrite every pixel
// skip the clear entirely.
func WithDelayedClear(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.delayedClear = enabled
	}
}

// WithTextureUnits sets the number of texture units. Values are clamped to
// [1, 32].
func WithTextureUnits(n int) ContextOption {
	return func(o *contextOptions) {
		o.textureUnits = min(max(n, 1), 32)
	}
}
