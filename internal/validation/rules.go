package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docaggregator/internal/manifest"
)

// ProjectDirRule requires the project's slot directory.
type ProjectDirRule struct{}

func (ProjectDirRule) Name() string { return "project_dir" }

func (ProjectDirRule) Check(vctx Context, m *manifest.ProjectManifest) ([]string, bool) {
	dir := filepath.Join(vctx.ProjectsDir, m.Slug)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return []string{fmt.Sprintf("project directory not found for %s", m.Slug)}, true
	}
	return nil, false
}

// RequiredFilesRule requires files inside the project's slot.
type RequiredFilesRule struct {
	Files []string
}

func (RequiredFilesRule) Name() string { return "required_files" }

func (r RequiredFilesRule) Check(vctx Context, m *manifest.ProjectManifest) ([]string, bool) {
	var issues []string
	for _, f := range r.Files {
		if _, err := os.Stat(filepath.Join(vctx.ProjectsDir, m.Slug, f)); err != nil {
			issues = append(issues, fmt.Sprintf("required file %s not found in %s", f, m.Slug))
		}
	}
	return issues, false
}

// SiteFilesRule requires the global index and mkdocs.yml.
type SiteFilesRule struct{}

func (SiteFilesRule) Name() string { return "site_files" }

func (SiteFilesRule) Check(vctx Context, _ []*manifest.ProjectManifest) []string {
	var issues []string
	if _, err := os.Stat(filepath.Join(vctx.ProjectsDir, "index.md")); err != nil {
		issues = append(issues, "projects index not found")
	}
	if vctx.MkDocsFile != "" {
		if _, err := os.Stat(vctx.MkDocsFile); err != nil {
			issues = append(issues, "mkdocs.yml not found")
		}
	}
	return issues
}
