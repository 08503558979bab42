package render

import (
	"context"
	"errors"
	"log/slog"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// Outcome is what the build step did.
type Outcome string

const (
	OutcomeBuilt       Outcome = "built"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailed      Outcome = "failed"
)

// Build applies mode to r. Failures are logged; an error is returned only
// when mode is always, since the build was then explicitly required.
func Build(ctx context.Context, mode config.RenderMode, r Renderer, siteDir string) (Outcome, error) {
	switch mode {
	case config.RenderModeNever:
		slog.Info("Site build disabled", logfields.Mode(string(mode)))
		return OutcomeSkipped, nil
	case config.RenderModeAlways:
	default:
		if p, ok := r.(Prober); ok && !p.Available() {
			slog.Warn("mkdocs not found on PATH, skipping site build", logfields.Mode(string(mode)))
			return OutcomeUnavailable, nil
		}
	}

	err := r.Execute(ctx, siteDir)
	if err == nil {
		return OutcomeBuilt, nil
	}
	slog.Error("Site build failed", logfields.Path(siteDir), logfields.Error(err))
	if mode != config.RenderModeAlways {
		return OutcomeFailed, nil
	}
	b := derrors.BuildError("site build failed").WithCause(err).WithContext("dir", siteDir)
	if errors.Is(err, ErrMkDocsNotFound) {
		b = b.UserAction()
	}
	return OutcomeFailed, b.Build()
}
