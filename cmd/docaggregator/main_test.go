package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docaggregator/internal/aggregate"
	"git.home.luguber.info/inful/docaggregator/internal/testutil"
)

const projectManifest = `
project:
  name: Alpha
  slug: alpha
  status: production
documentation:
  structure:
    - {source: guide.md, title: Guide}
`

func TestRun_LocalMode(t *testing.T) {
	t.Chdir(t.TempDir())
	project := filepath.Join(t.TempDir(), "alpha")
	testutil.WriteTree(t, project, map[string]string{"docs.yaml": projectManifest, "guide.md": "# Guide"})
	out := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "docaggregator.prom")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{
		"--mode", "local",
		"--local-projects", project,
		"--output-dir", out,
		"--render-mode", "never",
		"--metrics-file", metricsFile,
	}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	testutil.NewFileAssertions(t, out).
		AssertFileContains("docs/docs/proyectos/alpha/guide.md", "# Guide").
		AssertFileContains("docs/docs/proyectos/index.md", "**Total de Proyectos:** 1").
		AssertFileExists("docs/mkdocs.yml").
		AssertFileExists("docs/" + aggregate.ReportFile)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docaggregator_projects_aggregated 1")
}

func TestRun_ConfigErrorsExitWithConfigCode(t *testing.T) {
	t.Chdir(t.TempDir())
	cases := map[string][]string{
		"local without projects": {"--mode", "local"},
		"bad render mode":        {"--mode", "local", "--local-projects", ".", "--render-mode", "sometimes"},
		"watch in branches mode": {"--watch"},
		"missing config file":    {"--config", "nope.yaml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, 7, run(context.Background(), args, &stderr))
		})
	}
}

func TestRun_UnknownModeIsUsageError(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"--mode", "ftp"}, &stderr))
	assert.Contains(t, stderr.String(), "--mode")
}

func TestRun_BranchesModeOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"--base-dir", dir, "--output-dir", dir, "--render-mode", "never"}, &stderr)
	assert.NotEqual(t, 0, code)
}
