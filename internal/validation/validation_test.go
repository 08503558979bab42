package validation

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/testutil"
)

func TestValidate_CollectsEveryIssue(t *testing.T) {
	root := t.TempDir()
	projects := filepath.Join(root, "docs", "docs", "proyectos")
	testutil.WriteTree(t, projects, map[string]string{
		"index.md":      "global",
		"good/index.md": "ok",
		"noindex/a.md":  "a",
	})
	testutil.WriteTree(t, root, map[string]string{"docs/mkdocs.yml": "site_name: x"})

	ms := []*manifest.ProjectManifest{
		{Slug: "good"},
		{Slug: "noindex"},
		{Slug: "missing"},
	}
	res := Default().Validate(Context{ProjectsDir: projects, MkDocsFile: filepath.Join(root, "docs", "mkdocs.yml")}, ms)
	assert.False(t, res.OK())
	assert.Equal(t, []string{
		"required file index.md not found in noindex",
		"project directory not found for missing",
	}, res.Issues)
}

func TestValidate_Clean(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"index.md": "g", "a/index.md": "a"})
	res := Default().Validate(Context{ProjectsDir: root}, []*manifest.ProjectManifest{{Slug: "a"}})
	assert.True(t, res.OK())
}

func TestSiteFilesRule(t *testing.T) {
	root := t.TempDir()
	issues := SiteFilesRule{}.Check(Context{ProjectsDir: root, MkDocsFile: filepath.Join(root, "mkdocs.yml")}, nil)
	assert.Equal(t, []string{"projects index not found", "mkdocs.yml not found"}, issues)
}
