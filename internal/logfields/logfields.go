package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyProject    = "project"
	KeySlug       = "slug"
	KeyBranch     = "branch"
	KeyCategory   = "category"
	KeyMode       = "mode"
	KeyPath       = "path"
	KeySource     = "source"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Project(name string) slog.Attr   { return slog.String(KeyProject, name) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration converts d to the canonical millisecond field.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
