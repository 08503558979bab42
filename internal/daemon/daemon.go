package daemon

import (
	"context"
	"log/slog"
	"time"

	ferrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

const (
	DefaultQuietWindow = 2 * time.Second
	DefaultMaxDelay    = 30 * time.Second
)

// RunFunc performs one complete aggregation run.
type RunFunc func(ctx context.Context, reason string) error

// Options selects the triggers. At least one of WatchDirs or Interval must be set.
type Options struct {
	WatchDirs []string
	// ExcludeDirs are never watched; the aggregator's own output lives here.
	ExcludeDirs []string
	Interval    time.Duration
	QuietWindow time.Duration
	MaxDelay    time.Duration
	// RunOnStart performs an initial run before waiting for triggers.
	RunOnStart bool
}

// Daemon re-runs aggregation whenever a trigger fires.
type Daemon struct {
	opts Options
	run  RunFunc
}

func New(opts Options, run RunFunc) (*Daemon, error) {
	if run == nil {
		return nil, ferrors.ValidationError("run function is required").Build()
	}
	if len(opts.WatchDirs) == 0 && opts.Interval <= 0 {
		return nil, ferrors.ConfigError("watch mode needs project directories or an interval").Build()
	}
	if opts.QuietWindow <= 0 {
		opts.QuietWindow = DefaultQuietWindow
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	return &Daemon{opts: opts, run: run}, nil
}

// Run blocks until ctx is canceled. Run errors are logged and the daemon keeps going.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	requests := make(chan string, 16)
	triggers := make(chan Trigger, 1)

	if len(d.opts.WatchDirs) > 0 {
		w, err := NewWatcher(d.opts.WatchDirs, d.opts.ExcludeDirs)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to start watcher").Build()
		}
		defer func() { _ = w.Close() }()
		go w.Run(ctx, requests)
	}

	if d.opts.Interval > 0 {
		s, err := NewScheduler()
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to start scheduler").Build()
		}
		if _, err := s.ScheduleInterval(ctx, d.opts.Interval, requests); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid interval").Build()
		}
		s.Start()
		defer func() {
			if err := s.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	debouncer, err := NewDebouncer(d.opts.QuietWindow, d.opts.MaxDelay)
	if err != nil {
		return err
	}
	go debouncer.Run(ctx, requests, triggers)

	if d.opts.RunOnStart {
		d.runOnce(ctx, Trigger{Reason: "startup", At: time.Now()})
	}

	slog.Info("Waiting for changes")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Daemon stopped")
			return nil
		case t := <-triggers:
			d.runOnce(ctx, t)
		}
	}
}

func (d *Daemon) runOnce(ctx context.Context, t Trigger) {
	start := time.Now()
	slog.Info("Starting triggered run", slog.String("reason", t.Reason))
	if err := d.run(ctx, t.Reason); err != nil {
		slog.Error("Triggered run failed", slog.String("reason", t.Reason), logfields.Error(err))
		return
	}
	slog.Info("Triggered run complete", logfields.Duration(time.Since(start)))
}
