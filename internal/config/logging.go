package config

import (
	"io"
	"log/slog"
)

// SlogLevel converts the configured level, with verbose forcing debug.
func (l LoggingConfig) SlogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch l.Level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the slog handler for w honoring format and level.
func (l LoggingConfig) NewHandler(w io.Writer, verbose bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.SlogLevel(verbose)}
	if l.Format == LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
