package aggregate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/render"
	"git.home.luguber.info/inful/docaggregator/internal/source"
	"git.home.luguber.info/inful/docaggregator/internal/testutil"
	"git.home.luguber.info/inful/docaggregator/internal/validation"
)

const alphaManifest = `
project:
  name: Alpha
  slug: alpha
  status: production
  technologies: [Go]
documentation:
  structure:
    - {source: docs/guide.md, title: Guide}
    - {source: docs/api, title: API, type: directory}
aggregator:
  category: Core
  priority: 10
`

const betaManifest = `
project:
  name: Beta
  slug: beta
  status: development
documentation:
  structure:
    - {source: README.md, title: Intro}
aggregator:
  category: Tools
`

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func localProjects(t *testing.T) (alpha, beta string) {
	t.Helper()
	root := t.TempDir()
	alpha = filepath.Join(root, "alpha")
	beta = filepath.Join(root, "beta")
	testutil.WriteTree(t, alpha, map[string]string{
		"docs.yaml":         alphaManifest,
		"docs/guide.md":     "# Guide",
		"docs/api/index.md": "# API",
	})
	testutil.WriteTree(t, beta, map[string]string{
		"docs.yaml": betaManifest,
		"README.md": "# Beta",
	})
	return alpha, beta
}

func newLocalRunner(t *testing.T, out string, dirs ...string) *Runner {
	t.Helper()
	acq, err := NewAcquirer(source.ModeLocal, "", dirs, config.Default().Branches, nil)
	require.NoError(t, err)
	return NewRunner(Options{OutputDir: out, RenderMode: config.RenderModeNever}, config.Default().Site, acq).
		WithClock(func() time.Time { return fixedNow })
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_LocalTwoProjects(t *testing.T) {
	alpha, beta := localProjects(t)
	out := t.TempDir()
	r := newLocalRunner(t, out, alpha, beta)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Aggregated)
	assert.Equal(t, metrics.OutcomeSuccess, report.Outcome)
	assert.Equal(t, render.OutcomeSkipped, report.Build)
	assert.Empty(t, report.Skipped)

	layout := r.Layout()
	testutil.NewFileAssertions(t, layout.ProjectsDir()).
		AssertFileExists("index.md").
		AssertFileExists("alpha/index.md").
		AssertFileContains("alpha/guide.md", "# Guide").
		AssertFileContains("alpha/api/index.md", "# API").
		AssertFileContains("beta/README.md", "# Beta")

	index := readFile(t, filepath.Join(layout.ProjectsDir(), "index.md"))
	assert.Contains(t, index, "**Total de Proyectos:** 2")
	assert.Contains(t, index, "production: 1, development: 1")
	assert.Contains(t, index, "Core: 1, Tools: 1")

	mk := readFile(t, layout.MkDocsFile())
	assert.Less(t, strings.Index(mk, "📁 Core"), strings.Index(mk, "📁 Tools"))
	assert.Contains(t, mk, "proyectos/alpha/api/index.md")

	alphaIndex := readFile(t, filepath.Join(layout.ProjectsDir(), "alpha", "index.md"))
	assert.Contains(t, alphaIndex, "2024-05-06 07:08:09")

	var persisted Report
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(layout.SiteDir(), ReportFile))), &persisted))
	assert.Equal(t, report.RunID, persisted.RunID)
	assert.Equal(t, []string{"alpha", "beta"}, []string{persisted.Projects[0].Slug, persisted.Projects[1].Slug})
	assert.Equal(t, source.ModeLocal, persisted.Mode)
}

func TestRun_SameCategoryOrderedInIndexAndNav(t *testing.T) {
	root := t.TempDir()
	alpha := filepath.Join(root, "alpha")
	beta := filepath.Join(root, "beta")
	gamma := filepath.Join(root, "gamma")
	testutil.WriteTree(t, beta, map[string]string{
		"docs.yaml": `
project: {name: Beta, slug: beta, status: development}
documentation:
  structure:
    - {source: README.md, title: Beta intro}
aggregator: {category: Core, priority: 10}
`,
		"README.md": "# Beta",
	})
	testutil.WriteTree(t, alpha, map[string]string{
		"docs.yaml": `
project: {name: Alpha, slug: alpha, status: production}
documentation:
  structure:
    - {source: guide.md, title: Alpha guide}
aggregator: {category: Core, priority: 90}
`,
		"guide.md": "# Alpha",
	})
	testutil.WriteTree(t, gamma, map[string]string{
		"docs.yaml": "project: {name: Gamma, slug: gamma}\naggregator: {category: Core}\n",
		"guide.md":  "# Gamma",
	})

	out := t.TempDir()
	r := newLocalRunner(t, out, alpha, gamma, beta)
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Aggregated)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, gamma, report.Skipped[0].Source)

	layout := r.Layout()
	index := readFile(t, filepath.Join(layout.ProjectsDir(), "index.md"))
	assert.Contains(t, index, "**Total de Proyectos:** 2")
	assert.Contains(t, index, "production: 1, development: 1")
	assert.Contains(t, index, "Core: 2")
	assert.Less(t, strings.Index(index, "[Alpha](./alpha/index.md)"), strings.Index(index, "[Beta](./beta/index.md)"))
	assert.NotContains(t, index, "Gamma")

	mk := readFile(t, layout.MkDocsFile())
	assert.Less(t, strings.Index(mk, "✅ Alpha"), strings.Index(mk, "🟡 Beta"))
	assert.Equal(t, 1, strings.Count(mk, "📁 Core"))
	assert.NotContains(t, mk, "gamma")
	assert.NotContains(t, mk, "Gamma")
	testutil.NewFileAssertions(t, layout.ProjectsDir()).AssertNotExists("gamma")
}

func TestRun_SkipsMissingAndInvalidManifests(t *testing.T) {
	alpha, _ := localProjects(t)
	root := t.TempDir()
	noManifest := filepath.Join(root, "plain")
	invalid := filepath.Join(root, "invalid")
	testutil.WriteTree(t, noManifest, map[string]string{"README.md": "x"})
	testutil.WriteTree(t, invalid, map[string]string{"docs.yaml": "project: {name: X, slug: x}\n"})
	missingDir := filepath.Join(root, "does-not-exist")

	out := t.TempDir()
	report, err := newLocalRunner(t, out, noManifest, alpha, invalid, missingDir).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Aggregated)
	require.Len(t, report.Skipped, 3)
	assert.Equal(t, "manifest not found", report.Skipped[0].Reason)
	assert.Contains(t, report.Skipped[1].Reason, "load manifest")
	assert.Equal(t, missingDir, report.Skipped[2].Source)

	index := readFile(t, filepath.Join(out, "docs", "docs", "proyectos", "index.md"))
	assert.Contains(t, index, "**Total de Proyectos:** 1")
}

func TestRun_DuplicateSlugKeepsFirst(t *testing.T) {
	alpha, _ := localProjects(t)
	dup := filepath.Join(t.TempDir(), "dup")
	testutil.WriteTree(t, dup, map[string]string{
		"docs.yaml": strings.Replace(alphaManifest, "name: Alpha", "name: Impostor", 1),
	})

	report, err := newLocalRunner(t, t.TempDir(), alpha, dup).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Projects, 1)
	assert.Equal(t, "Alpha", report.Projects[0].Name)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Reason, "duplicate slug")
}

func TestRun_EmptyRunLeavesSiteUntouched(t *testing.T) {
	out := t.TempDir()
	testutil.WriteTree(t, out, map[string]string{
		"docs/mkdocs.yml":              "site_name: Existing\n",
		"docs/docs/proyectos/index.md": "# Existing index\n",
	})
	acq, err := NewAcquirer(source.ModeLocal, "", []string{filepath.Join(out, "missing")}, config.Default().Branches, nil)
	require.NoError(t, err)
	renderer := &countingRenderer{}

	report, err := NewRunner(Options{OutputDir: out, RenderMode: config.RenderModeAlways}, config.Default().Site, acq).
		WithRenderer(renderer).
		Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Aggregated)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, render.OutcomeSkipped, report.Build)
	assert.Empty(t, report.Issues)
	assert.Zero(t, renderer.calls)

	assert.Equal(t, "site_name: Existing\n", readFile(t, filepath.Join(out, "docs", "mkdocs.yml")))
	assert.Equal(t, "# Existing index\n", readFile(t, filepath.Join(out, "docs", "docs", "proyectos", "index.md")))
}

type alwaysIssue struct{}

func (alwaysIssue) Name() string { return "always" }
func (alwaysIssue) Check(validation.Context, *manifest.ProjectManifest) ([]string, bool) {
	return []string{"synthetic issue"}, false
}

type countingRenderer struct{ calls int }

func (c *countingRenderer) Execute(context.Context, string) error {
	c.calls++
	return nil
}

func TestRun_IssuesSkipBuildAndFailOnIssues(t *testing.T) {
	alpha, _ := localProjects(t)
	acq, err := NewAcquirer(source.ModeLocal, "", []string{alpha}, config.Default().Branches, nil)
	require.NoError(t, err)

	renderer := &countingRenderer{}
	r := NewRunner(Options{OutputDir: t.TempDir(), RenderMode: config.RenderModeAlways}, config.Default().Site, acq).
		WithRenderer(renderer).
		WithValidator(validation.NewValidator([]validation.ProjectRule{alwaysIssue{}}, nil))

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeIssues, report.Outcome)
	assert.Equal(t, []string{"synthetic issue"}, report.Issues)
	assert.Equal(t, render.OutcomeSkipped, report.Build)
	assert.Zero(t, renderer.calls)

	r.opts.FailOnIssues = true
	_, err = r.Run(context.Background())
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
}

func TestRun_BuildsWhenClean(t *testing.T) {
	alpha, _ := localProjects(t)
	acq, err := NewAcquirer(source.ModeLocal, "", []string{alpha}, config.Default().Branches, nil)
	require.NoError(t, err)
	renderer := &countingRenderer{}

	report, err := NewRunner(Options{OutputDir: t.TempDir(), RenderMode: config.RenderModeAlways}, config.Default().Site, acq).
		WithRenderer(renderer).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, render.OutcomeBuilt, report.Build)
}

func TestRun_Canceled(t *testing.T) {
	alpha, _ := localProjects(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newLocalRunner(t, t.TempDir(), alpha).Run(ctx)
	require.Error(t, err)
	assert.Equal(t, metrics.OutcomeCanceled, report.Outcome)
}

func TestRun_BranchesModeCleansCheckouts(t *testing.T) {
	origin := testutil.NewOriginRepo(t, map[string]map[string]string{
		"docs/alpha":  {"docs.yaml": alphaManifest, "docs/guide.md": "# Guide"},
		"docs/broken": {"docs.yaml": "project: [unterminated"},
		"docs/beta":   {"docs.yaml": betaManifest, "README.md": "# Beta"},
		"feature/x":   {"docs.yaml": betaManifest},
	})
	base := testutil.CloneBase(t, origin)
	tempRoot := t.TempDir()

	cfg := config.Default().Branches
	cfg.TempRoot = tempRoot
	cfg.Retries = 0
	acq, err := NewAcquirer(source.ModeBranches, base, nil, cfg, nil)
	require.NoError(t, err)

	out := t.TempDir()
	report, err := NewRunner(Options{BaseDir: base, OutputDir: out, RenderMode: config.RenderModeNever}, config.Default().Site, acq).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Aggregated)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "docs/broken", report.Skipped[0].Source)

	entries, err := os.ReadDir(tempRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "checkouts must be removed after processing")

	testutil.NewFileAssertions(t, filepath.Join(out, "docs", "docs", "proyectos")).
		AssertFileContains("alpha/guide.md", "# Guide").
		AssertFileContains("beta/README.md", "# Beta")
}

func TestNewAcquirer(t *testing.T) {
	_, err := NewAcquirer(source.ModeLocal, "", []string{" , "}, config.Default().Branches, nil)
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))

	_, err = NewAcquirer("ftp", "", nil, config.Default().Branches, nil)
	require.Error(t, err)

	acq, err := NewAcquirer(source.ModeLocal, "", []string{"a,b", "c"}, config.Default().Branches, nil)
	require.NoError(t, err)
	assert.Equal(t, source.ModeLocal, acq.Mode())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList([]string{"a, b", "", "c"}))
	assert.Nil(t, SplitList(nil))
}
