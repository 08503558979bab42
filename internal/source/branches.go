package source

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	"git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/git"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/retry"
	"git.home.luguber.info/inful/docaggregator/internal/workspace"
)

// Branches walks documentation branches of a base repository, checking each
// out into its own temporary directory.
type Branches struct {
	baseDir   string
	remote    string
	prefix    string
	client    *git.Client
	workspace *workspace.Manager
	recorder  metrics.Recorder
}

// NewBranches builds a branch acquirer for the repository at baseDir.
func NewBranches(baseDir string, cfg config.BranchesConfig) *Branches {
	return &Branches{
		baseDir:   baseDir,
		remote:    cfg.Remote,
		prefix:    cfg.Prefix,
		client:    git.NewClient(cfg.Depth, retry.FromBranches(cfg)),
		workspace: workspace.NewManager(cfg.TempRoot),
		recorder:  metrics.NoopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (b *Branches) WithRecorder(r metrics.Recorder) *Branches {
	if r != nil {
		b.recorder = r
	}
	return b
}

func (b *Branches) Mode() Mode { return ModeBranches }

func (b *Branches) Walk(ctx context.Context, visit VisitFunc) ([]Skip, error) {
	slog.Info("Searching documentation branches", logfields.Path(b.baseDir), logfields.Source(b.remote+"/"+b.prefix))
	branches, err := git.DiscoverBranches(b.baseDir, b.remote, b.prefix)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, nil
	}
	url, err := git.CloneSource(b.baseDir, b.remote)
	if err != nil {
		return nil, err
	}

	var skipped []Skip
	for _, branch := range branches {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		if skip := b.visitBranch(ctx, url, branch, visit); skip != nil {
			skipped = append(skipped, *skip)
		}
	}
	return skipped, nil
}

// visitBranch holds the checkout for exactly the duration of visit.
func (b *Branches) visitBranch(ctx context.Context, url, branch string, visit VisitFunc) *Skip {
	dir, err := b.workspace.Acquire(branch)
	if err != nil {
		slog.Error("Failed to prepare checkout directory", logfields.Branch(branch), logfields.Error(err))
		return &Skip{Source: branch, Reason: err.Error()}
	}
	defer func() {
		if rerr := dir.Release(); rerr != nil {
			slog.Warn("Failed to remove checkout", logfields.Branch(branch), logfields.Error(rerr))
		}
	}()

	slog.Info("Cloning branch", logfields.Branch(branch))
	res, err := b.client.CloneBranch(ctx, url, branch, dir.Path())
	b.recorder.ObserveCheckoutDuration(res.Duration, err == nil)
	if res.Attempts > 1 {
		b.recorder.IncCheckoutRetries(res.Attempts - 1)
	}
	if err != nil {
		slog.Error("Failed to clone branch", logfields.Branch(branch), logfields.Error(err), slog.String("output", cloneOutput(err)))
		return &Skip{Source: branch, Reason: err.Error()}
	}

	visit(ctx, Snapshot{Root: dir.Path(), Label: branch, Branch: branch})
	return nil
}

func cloneOutput(err error) string {
	if ce, ok := errors.AsClassified(err); ok {
		out, _ := ce.Context().GetString("output")
		return out
	}
	return ""
}
