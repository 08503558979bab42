// Package render invokes MkDocs against the composed site. The generator
// itself is an external collaborator; this package only wraps the process.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
)

// Renderer performs the final static site build inside siteDir, the
// directory holding mkdocs.yml.
type Renderer interface {
	Execute(ctx context.Context, siteDir string) error
}

// Prober is implemented by renderers that can report whether they can run.
type Prober interface {
	Available() bool
}

// MkDocsRenderer runs `mkdocs build --strict`.
type MkDocsRenderer struct {
	Binary string
}

// NewMkDocsRenderer returns a renderer for binary, "mkdocs" when empty.
func NewMkDocsRenderer(binary string) *MkDocsRenderer {
	if binary == "" {
		binary = "mkdocs"
	}
	return &MkDocsRenderer{Binary: binary}
}

func (r *MkDocsRenderer) Available() bool {
	_, err := exec.LookPath(r.Binary)
	return err == nil
}

func (r *MkDocsRenderer) Execute(ctx context.Context, siteDir string) error {
	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMkDocsNotFound, err)
	}

	cmd := exec.CommandContext(ctx, bin, "build", "--strict")
	cmd.Dir = siteDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Info("Building MkDocs site", logfields.Path(siteDir))

	err = cmd.Run()
	if out := strings.TrimSpace(stdout.String()); out != "" {
		slog.Debug("mkdocs stdout", slog.String("output", out))
	}
	if err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		if output != "" {
			return fmt.Errorf("%w: %w: %s", ErrMkDocsFailed, err, output)
		}
		return fmt.Errorf("%w: %w", ErrMkDocsFailed, err)
	}
	slog.Info("MkDocs site built", logfields.Path(siteDir))
	return nil
}

// NoopRenderer performs no rendering; useful in tests or when only composition is wanted.
type NoopRenderer struct{}

func (NoopRenderer) Available() bool { return true }

func (NoopRenderer) Execute(_ context.Context, siteDir string) error {
	slog.Debug("NoopRenderer skipping render", logfields.Path(siteDir))
	return nil
}
