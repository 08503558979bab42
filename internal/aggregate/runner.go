package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	"git.home.luguber.info/inful/docaggregator/internal/content"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/notify"
	"git.home.luguber.info/inful/docaggregator/internal/render"
	"git.home.luguber.info/inful/docaggregator/internal/site"
	"git.home.luguber.info/inful/docaggregator/internal/source"
	"git.home.luguber.info/inful/docaggregator/internal/validation"
)

// Options are the per-invocation settings of a run.
type Options struct {
	BaseDir      string
	OutputDir    string
	RenderMode   config.RenderMode
	FailOnIssues bool
}

// Runner wires the components of one aggregation run.
type Runner struct {
	opts      Options
	site      config.SiteConfig
	acquirer  source.Acquirer
	layout    site.Layout
	copier    *content.Copier
	composer  *site.Composer
	validator *validation.Validator
	renderer  render.Renderer
	recorder  metrics.Recorder
	publisher notify.Publisher
	now       func() time.Time
}

// NewRunner returns a runner with MkDocs rendering, the default validator and
// no metrics or notifications.
func NewRunner(opts Options, siteCfg config.SiteConfig, acq source.Acquirer) *Runner {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.RenderMode == "" {
		opts.RenderMode = config.RenderModeAuto
	}
	layout := site.Layout{Output: opts.OutputDir}
	return &Runner{
		opts:      opts,
		site:      siteCfg,
		acquirer:  acq,
		layout:    layout,
		copier:    content.NewCopier(layout.ProjectsDir()),
		composer:  site.NewComposer(layout, siteCfg),
		validator: validation.Default(),
		renderer:  render.NewMkDocsRenderer(config.DefaultMkDocsBinary),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
	}
}

func (r *Runner) WithRenderer(rr render.Renderer) *Runner {
	if rr != nil {
		r.renderer = rr
	}
	return r
}

func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

func (r *Runner) WithValidator(v *validation.Validator) *Runner {
	if v != nil {
		r.validator = v
	}
	return r
}

// WithPublisher enables run notifications.
func (r *Runner) WithPublisher(p notify.Publisher) *Runner {
	r.publisher = p
	return r
}

// WithClock replaces the clock used for timestamps.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	if now != nil {
		r.now = now
		r.copier.WithClock(now)
	}
	return r
}

// Layout exposes where the run writes.
func (r *Runner) Layout() site.Layout { return r.layout }

// Run performs one full aggregation. The returned report is never nil.
// Skipped projects do not make the run fail; the error is non-nil when a
// stage failed, when the build was required and failed, or when validation
// found issues and FailOnIssues is set.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	st := newState(uuid.NewString(), r.opts.BaseDir, r.layout, r.now())
	log := slog.With(logfields.RunID(st.RunID))
	log.Info("Starting documentation aggregation",
		logfields.Mode(string(r.acquirer.Mode())), logfields.Path(r.opts.OutputDir))

	stages := []stageDef{
		{StagePrepare, r.stagePrepare},
		{StageCollect, r.stageCollect},
		{StageCompose, r.stageCompose},
		{StageValidate, r.stageValidate},
		{StageBuild, r.stageBuild},
	}
	runErr := runStages(ctx, st, r.recorder, stages)
	if runErr == nil && r.opts.FailOnIssues && len(st.Issues) > 0 {
		runErr = derrors.ValidationError("validation found issues").
			WithContext("issues", len(st.Issues)).Build()
	}

	end := r.now()
	outcome := deriveOutcome(st, runErr)
	report := newReport(st, r.acquirer.Mode(), end, outcome, runErr)
	r.recorder.ObserveRunDuration(end.Sub(st.Start))
	r.recorder.IncRunOutcome(outcome)
	r.recorder.SetProjectsAggregated(len(st.Manifests))

	if path, err := report.Persist(r.layout.SiteDir()); err != nil {
		log.Warn("Failed to write run report", logfields.Error(err))
	} else {
		log.Debug("Run report written", logfields.Path(path))
	}
	notify.Send(ctx, r.publisher, report)

	log.Info("Aggregation finished",
		logfields.Count(len(st.Manifests)),
		slog.Int("skipped", len(st.Skipped)),
		slog.Int("issues", len(st.Issues)),
		slog.String("outcome", string(outcome)),
		logfields.Duration(end.Sub(st.Start)))
	if runErr == nil && len(st.Manifests) > 0 {
		log.Info("Site ready", logfields.Path(r.layout.MkDocsFile()),
			slog.String("serve", "cd "+r.layout.SiteDir()+" && mkdocs serve"))
	}
	return report, runErr
}

func deriveOutcome(st *State, runErr error) metrics.RunOutcome {
	var se *StageError
	switch {
	case errors.As(runErr, &se) && se.Kind == StageErrorCanceled:
		return metrics.OutcomeCanceled
	case runErr != nil && !derrors.HasCategory(runErr, derrors.CategoryValidation):
		if st.Build == render.OutcomeFailed {
			return metrics.OutcomeBuildFailed
		}
		return metrics.OutcomeFailed
	case st.Build == render.OutcomeFailed:
		return metrics.OutcomeBuildFailed
	case len(st.Issues) > 0:
		return metrics.OutcomeIssues
	default:
		return metrics.OutcomeSuccess
	}
}

func (r *Runner) stagePrepare(_ context.Context, _ *State) error {
	dir := r.layout.ProjectsDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return derrors.FileSystemError("create output directory").
			WithCause(err).WithContext("path", dir).Build()
	}
	return nil
}

func (r *Runner) stageCollect(ctx context.Context, st *State) error {
	skipped, err := r.acquirer.Walk(ctx, func(ctx context.Context, snap source.Snapshot) {
		r.collectProject(ctx, st, snap)
	})
	for _, s := range skipped {
		st.Skipped = append(st.Skipped, s)
		r.recorder.IncProjectResult(metrics.ProjectSkipped)
	}
	if err != nil {
		return err
	}
	if len(st.Manifests) == 0 {
		slog.Warn("No projects with documentation were found; leaving the site unchanged")
	}
	return nil
}

// stageCompose, stageValidate and stageBuild leave an existing site alone
// when the run aggregated nothing.
func (r *Runner) stageCompose(_ context.Context, st *State) error {
	if len(st.Manifests) == 0 {
		return nil
	}
	if _, err := r.composer.WriteProjectsIndex(st.Manifests); err != nil {
		return err
	}
	_, err := r.composer.WriteMkDocsConfig(st.Manifests)
	return err
}

func (r *Runner) stageValidate(_ context.Context, st *State) error {
	if len(st.Manifests) == 0 {
		return nil
	}
	res := r.validator.Validate(validation.Context{
		ProjectsDir: r.layout.ProjectsDir(),
		MkDocsFile:  r.layout.MkDocsFile(),
	}, st.Manifests)
	st.Issues = append(st.Issues, res.Issues...)
	return nil
}

func (r *Runner) stageBuild(ctx context.Context, st *State) error {
	if len(st.Manifests) == 0 {
		st.Build = render.OutcomeSkipped
		return nil
	}
	if len(st.Issues) > 0 {
		slog.Warn("Skipping site build because validation found issues", logfields.Count(len(st.Issues)))
		st.Build = render.OutcomeSkipped
		return nil
	}
	siteDir, err := filepath.Abs(r.layout.SiteDir())
	if err != nil {
		return derrors.FileSystemError("resolve site directory").WithCause(err).Build()
	}
	outcome, err := render.Build(ctx, r.opts.RenderMode, r.renderer, siteDir)
	st.Build = outcome
	return err
}
