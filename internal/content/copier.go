// Package content copies a project's declared documentation into its slot in
// the aggregate site and writes the project's index page.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/templates"
)

// IndexFile is the per-project index page name.
const IndexFile = "index.md"

// Copier writes project slots below a projects directory.
type Copier struct {
	projectsDir string
	now         func() time.Time
}

// NewCopier returns a copier writing into projectsDir/<slug>.
func NewCopier(projectsDir string) *Copier {
	return &Copier{projectsDir: projectsDir, now: time.Now}
}

// WithClock replaces the clock used for the index page timestamp.
func (c *Copier) WithClock(now func() time.Time) *Copier {
	if now != nil {
		c.now = now
	}
	return c
}

// ProjectDir returns the slot directory for slug.
func (c *Copier) ProjectDir(slug string) string {
	return filepath.Join(c.projectsDir, slug)
}

// ItemFailure is a declared item that existed but could not be copied.
type ItemFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Result summarizes one project copy.
type Result struct {
	Dest    string
	Copied  []string
	Missing []string
	Failed  []ItemFailure
}

// Copy copies every structure item and asset of m from sourceRoot, then writes
// index.md. Missing sources are skipped silently and per-item copy failures
// are logged; only failing to create the slot or write index.md is an error.
func (c *Copier) Copy(m *manifest.ProjectManifest, sourceRoot string) (*Result, error) {
	dest := c.ProjectDir(m.Slug)
	res := &Result{Dest: dest}
	slog.Info("Copying project documentation", logfields.Slug(m.Slug), logfields.Path(dest))

	if err := os.MkdirAll(dest, 0o750); err != nil {
		return res, derrors.FileSystemError("create project directory").
			WithCause(err).WithContext("path", dest).Build()
	}

	for _, item := range m.Structure {
		c.copyItem(res, m.Slug, sourceRoot, item.Source, item.IsDirectory())
	}
	for _, asset := range m.Assets {
		c.copyItem(res, m.Slug, sourceRoot, asset, true)
	}

	body, err := RenderProjectIndex(m, c.now())
	if err != nil {
		return res, derrors.InternalError("render project index").WithCause(err).WithContext("slug", m.Slug).Build()
	}
	if _, err := templates.WriteFile(dest, IndexFile, body, true); err != nil {
		return res, derrors.FileSystemError("write project index").
			WithCause(err).WithContext("path", filepath.Join(dest, IndexFile)).Build()
	}
	return res, nil
}

// copyItem copies rel from sourceRoot into the slot under its base name. When
// allowDir is false a directory source is skipped, matching file items.
func (c *Copier) copyItem(res *Result, slug, sourceRoot, rel string, allowDir bool) {
	src, base, err := resolveSource(sourceRoot, rel)
	if err != nil {
		slog.Warn("Skipping documentation item", logfields.Slug(slug), logfields.Source(rel), logfields.Error(err))
		res.Failed = append(res.Failed, ItemFailure{Source: rel, Error: err.Error()})
		return
	}
	info, err := os.Stat(src)
	if err != nil || (info.IsDir() && !allowDir) {
		slog.Debug("Documentation source missing", logfields.Slug(slug), logfields.Source(rel))
		res.Missing = append(res.Missing, rel)
		return
	}

	dst := filepath.Join(res.Dest, base)
	if info.IsDir() {
		err = ReplaceDir(src, dst)
	} else {
		err = CopyFile(src, dst)
	}
	if err != nil {
		slog.Error("Failed to copy documentation item", logfields.Slug(slug), logfields.Source(rel), logfields.Error(err))
		res.Failed = append(res.Failed, ItemFailure{Source: rel, Error: err.Error()})
		return
	}
	slog.Debug("Copied documentation item", logfields.Slug(slug), logfields.Source(rel))
	res.Copied = append(res.Copied, rel)
}

// resolveSource keeps declared paths inside the project source tree and
// returns the absolute source path with its destination base name.
func resolveSource(root, rel string) (string, string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if !filepath.IsLocal(clean) {
		return "", "", fmt.Errorf("path %q leaves the project source", rel)
	}
	base := filepath.Base(clean)
	if base == "." {
		return "", "", fmt.Errorf("path %q cannot be copied into the project slot", rel)
	}
	return filepath.Join(root, clean), base, nil
}
