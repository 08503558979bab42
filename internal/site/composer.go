package site

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/templates"
)

// Layout locates the generated files below an output directory.
type Layout struct {
	Output string
}

// SiteDir holds mkdocs.yml; mkdocs runs here.
func (l Layout) SiteDir() string { return filepath.Join(l.Output, "docs") }

// DocsDir is mkdocs' docs_dir.
func (l Layout) DocsDir() string { return filepath.Join(l.SiteDir(), "docs") }

// ProjectsDir holds one slot per project plus the global index.
func (l Layout) ProjectsDir() string { return filepath.Join(l.DocsDir(), ProjectsDirName) }

// MkDocsFile is the generated site configuration.
func (l Layout) MkDocsFile() string { return filepath.Join(l.SiteDir(), "mkdocs.yml") }

// Composer writes the global index and mkdocs.yml.
type Composer struct {
	layout Layout
	site   config.SiteConfig
}

func NewComposer(layout Layout, site config.SiteConfig) *Composer {
	return &Composer{layout: layout, site: site}
}

// WriteProjectsIndex renders and writes proyectos/index.md.
func (c *Composer) WriteProjectsIndex(ms []*manifest.ProjectManifest) (string, error) {
	body, err := RenderProjectsIndex(ms)
	if err != nil {
		return "", derrors.InternalError("render projects index").WithCause(err).Build()
	}
	path, err := templates.WriteFile(c.layout.ProjectsDir(), "index.md", body, true)
	if err != nil {
		return "", derrors.FileSystemError("write projects index").WithCause(err).Build()
	}
	slog.Info("Projects index written", logfields.Path(path), logfields.Count(len(ms)))
	return path, nil
}

// WriteMkDocsConfig renders and writes mkdocs.yml.
func (c *Composer) WriteMkDocsConfig(ms []*manifest.ProjectManifest) (string, error) {
	data, err := BuildMkDocsConfig(c.site, ms).Marshal()
	if err != nil {
		return "", derrors.InternalError("render mkdocs config").WithCause(err).Build()
	}
	path, err := templates.WriteFile(c.layout.SiteDir(), "mkdocs.yml", string(data), true)
	if err != nil {
		return "", derrors.FileSystemError("write mkdocs config").WithCause(err).Build()
	}
	slog.Info("MkDocs configuration written", logfields.Path(path))
	return path, nil
}
