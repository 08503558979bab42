package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docaggregator/internal/aggregate"
	"git.home.luguber.info/inful/docaggregator/internal/config"
	"git.home.luguber.info/inful/docaggregator/internal/daemon"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/notify"
	"git.home.luguber.info/inful/docaggregator/internal/render"
	"git.home.luguber.info/inful/docaggregator/internal/source"
)

// CLI is the docaggregator command line.
type CLI struct {
	Mode          string           `help:"Where project documentation comes from (branches|local)." enum:"branches,local" default:"branches"`
	BaseDir       string           `name:"base-dir" help:"Base repository for branch discovery." default:"." type:"path"`
	OutputDir     string           `name:"output-dir" help:"Directory receiving the generated docs/ site." default:"." type:"path"`
	LocalProjects []string         `name:"local-projects" help:"Project directories for local mode (repeatable or comma-separated)." placeholder:"PATH"`
	Verbose       bool             `short:"v" help:"Enable verbose logging."`
	Config        string           `short:"c" help:"Configuration file (docaggregator.yaml is used when present)."`
	RenderMode    string           `name:"render-mode" help:"Override build.render_mode (auto|always|never)."`
	FailOnIssues  bool             `name:"fail-on-issues" help:"Exit non-zero when validation finds issues."`
	MetricsFile   string           `name:"metrics-file" help:"Write Prometheus text-format metrics to this file after each run."`
	Watch         bool             `help:"Re-run when files under --local-projects change (local mode)."`
	Interval      time.Duration    `help:"Re-run periodically with this interval (e.g. 10m)."`
	Version       kong.VersionFlag `help:"Show version and exit."`
}

// AfterApply runs after flag parsing; set up logging once. Run may replace
// the handler when the config file asks for another format or level.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Run executes one aggregation, or keeps re-running it in watch/interval mode.
func (c *CLI) Run(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	mode := source.Mode(c.Mode)
	if c.Watch && mode != source.ModeLocal {
		return derrors.ConfigError("--watch requires --mode local").Build()
	}

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		prom     *metrics.PrometheusRecorder
	)
	metricsFile := c.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.Metrics.File
	}
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	acq, err := aggregate.NewAcquirer(mode, c.BaseDir, c.LocalProjects, cfg.Branches, recorder)
	if err != nil {
		return err
	}
	runner := aggregate.NewRunner(aggregate.Options{
		BaseDir:      c.BaseDir,
		OutputDir:    c.OutputDir,
		RenderMode:   cfg.Build.RenderMode,
		FailOnIssues: c.FailOnIssues,
	}, cfg.Site, acq).
		WithRenderer(render.NewMkDocsRenderer(cfg.Build.MkDocsBinary)).
		WithRecorder(recorder)

	if cfg.Notify.NATSURL != "" {
		pub, err := notify.NewNATSPublisher(cfg.Notify)
		if err != nil {
			slog.Warn("Notifications disabled", logfields.Error(err))
		} else {
			defer func() { _ = pub.Close() }()
			runner.WithPublisher(pub)
		}
	}

	runOnce := func(ctx context.Context, _ string) error {
		_, err := runner.Run(ctx)
		if prom != nil {
			if werr := prom.WriteTextfile(metricsFile); werr != nil {
				slog.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(werr))
			}
		}
		return err
	}

	if !c.Watch && c.Interval <= 0 {
		return runOnce(ctx, "cli")
	}

	opts := daemon.Options{Interval: c.Interval, RunOnStart: true}
	if c.Watch {
		opts.WatchDirs = aggregate.SplitList(c.LocalProjects)
		// The generated site may sit inside a watched project.
		opts.ExcludeDirs = []string{runner.Layout().SiteDir()}
	}
	d, err := daemon.New(opts, runOnce)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Format != config.LogFormatText || cfg.Logging.Level != config.LogLevelInfo {
		slog.SetDefault(slog.New(cfg.Logging.NewHandler(os.Stderr, c.Verbose)))
	}
	if c.RenderMode != "" {
		rm, err := config.ParseRenderMode(c.RenderMode)
		if err != nil {
			return nil, derrors.ConfigError("invalid --render-mode").WithCause(err).Build()
		}
		cfg.Build.RenderMode = rm
		slog.Debug("Render mode overridden via CLI flag", logfields.Mode(string(rm)))
	}
	return cfg, nil
}
