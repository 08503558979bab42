package config

import (
	"fmt"
	"strings"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
)

// NormalizationResult collects the warnings produced by Normalize.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Normalize canonicalizes enum fields and trims string values in place.
// Unknown enum values fall back to their default with a warning. Values that
// cannot be repaired produce a config error.
func Normalize(cfg *Config) (*NormalizationResult, error) {
	if cfg == nil {
		return nil, derrors.ConfigError("config is nil").Build()
	}
	res := &NormalizationResult{}

	if r := renderModes.NormalizeField("build.render_mode", string(cfg.Build.RenderMode)); r.Changed {
		cfg.Build.RenderMode = r.Value
		res.Warnings = append(res.Warnings, r.Warning)
	}
	if r := logLevels.NormalizeField("logging.level", string(cfg.Logging.Level)); r.Changed {
		cfg.Logging.Level = r.Value
		res.Warnings = append(res.Warnings, r.Warning)
	}
	if r := logFormats.NormalizeField("logging.format", string(cfg.Logging.Format)); r.Changed {
		cfg.Logging.Format = r.Value
		res.Warnings = append(res.Warnings, r.Warning)
	}
	if r := retryBackoffModes.NormalizeField("branches.retry_backoff", string(cfg.Branches.RetryBackoff)); r.Changed {
		cfg.Branches.RetryBackoff = r.Value
		res.Warnings = append(res.Warnings, r.Warning)
	}

	cfg.Branches.Remote = strings.TrimSpace(cfg.Branches.Remote)
	if cfg.Branches.Remote == "" {
		return nil, derrors.ConfigError("branches.remote must not be empty").Build()
	}
	if prefix := strings.TrimSpace(cfg.Branches.Prefix); prefix != cfg.Branches.Prefix {
		res.warn("trimmed branches.prefix to %q", prefix)
		cfg.Branches.Prefix = prefix
	}
	if cfg.Branches.Prefix != "" && !strings.HasSuffix(cfg.Branches.Prefix, "/") {
		res.warn("branches.prefix %q does not end with '/'", cfg.Branches.Prefix)
	}
	if cfg.Branches.RetryInitial > cfg.Branches.RetryMax {
		res.warn("branches.retry_initial_delay %s exceeds retry_max_delay %s, clamping", cfg.Branches.RetryInitial, cfg.Branches.RetryMax)
		cfg.Branches.RetryInitial = cfg.Branches.RetryMax
	}

	cfg.Notify.NATSURL = strings.TrimSpace(cfg.Notify.NATSURL)
	cfg.Notify.Subject = strings.TrimSpace(cfg.Notify.Subject)
	if cfg.Notify.NATSURL != "" && cfg.Notify.Subject == "" {
		return nil, derrors.ConfigError("notify.subject must not be empty when notify.nats_url is set").Build()
	}
	return res, nil
}
