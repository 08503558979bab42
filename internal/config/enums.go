package config

import "git.home.luguber.info/inful/docaggregator/internal/foundation/normalization"

// RenderMode selects when the MkDocs build runs.
type RenderMode string

const (
	// RenderModeAuto builds when the mkdocs binary is found and warns otherwise.
	RenderModeAuto RenderMode = "auto"
	// RenderModeAlways builds and treats a missing binary as a failure.
	RenderModeAlways RenderMode = "always"
	// RenderModeNever skips the build.
	RenderModeNever RenderMode = "never"
)

var renderModes = normalization.NewEnum("render mode", map[string]RenderMode{
	"auto":   RenderModeAuto,
	"always": RenderModeAlways,
	"never":  RenderModeNever,
}, RenderModeAuto)

// ParseRenderMode validates a user-supplied render mode.
func ParseRenderMode(raw string) (RenderMode, error) { return renderModes.Parse(raw) }

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = normalization.NewEnum("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

var logFormats = normalization.NewEnum("log format", map[string]LogFormat{
	"text": LogFormatText,
	"json": LogFormatJSON,
}, LogFormatText)

// RetryBackoffMode selects how clone retry delays grow.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffModes = normalization.NewEnum("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, RetryBackoffExponential)
