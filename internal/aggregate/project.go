package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/source"
)

// collectProject loads, checks and copies one snapshot. Every failure is
// recorded as a skip; nothing escapes to the caller, including panics.
func (r *Runner) collectProject(_ context.Context, st *State, snap source.Snapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Unexpected failure processing project", logfields.Source(snap.Label), slog.Any("panic", rec))
			r.skipProject(st, snap.Label, fmt.Sprintf("unexpected failure: %v", rec))
		}
	}()

	m, err := manifest.Load(snap.Root)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		slog.Warn("No docs.yaml found, skipping", logfields.Source(snap.Label))
		r.skipProject(st, snap.Label, "manifest not found")
		return
	case err != nil:
		slog.Error("Invalid docs.yaml, skipping", logfields.Source(snap.Label), logfields.Error(err))
		r.skipProject(st, snap.Label, err.Error())
		return
	}

	if prev, taken := st.slugOwner(m.Slug); taken {
		slog.Error("Duplicate project slug, skipping",
			logfields.Slug(m.Slug), logfields.Source(snap.Label), slog.String("first_source", prev))
		r.skipProject(st, snap.Label, fmt.Sprintf("duplicate slug %q (already provided by %s)", m.Slug, prev))
		return
	}

	slog.Info("Processing project", logfields.Project(m.Name), logfields.Slug(m.Slug), logfields.Source(snap.Label))
	res, err := r.copier.Copy(m, snap.Root)
	if err != nil {
		slog.Error("Failed to copy project documentation", logfields.Slug(m.Slug), logfields.Error(err))
		r.skipProject(st, snap.Label, err.Error())
		return
	}
	st.addProject(m, snap.Label, res)
	r.recorder.IncProjectResult(metrics.ProjectAggregated)
	slog.Info("Project aggregated", logfields.Project(m.Name), logfields.Slug(m.Slug),
		logfields.Count(len(res.Copied)), slog.Int("missing", len(res.Missing)))
}

func (r *Runner) skipProject(st *State, src, reason string) {
	st.skip(src, reason)
	r.recorder.IncProjectResult(metrics.ProjectSkipped)
}
