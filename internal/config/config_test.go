package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docaggregator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Centro de Documentación", cfg.Site.Name)
	assert.Equal(t, "material", cfg.Site.Theme.Name)
	assert.Equal(t, []string{"search", "tags"}, cfg.Site.Plugins)
	assert.Equal(t, "origin", cfg.Branches.Remote)
	assert.Equal(t, "docs/", cfg.Branches.Prefix)
	assert.Equal(t, 1, cfg.Branches.Depth)
	assert.Equal(t, 2, cfg.Branches.Retries)
	assert.Equal(t, RenderModeAuto, cfg.Build.RenderMode)
	assert.Equal(t, "mkdocs", cfg.Build.MkDocsBinary)
	assert.Equal(t, "docs.aggregated", cfg.Notify.Subject)
	assert.NotEmpty(t, cfg.Branches.TempRoot)
}

func TestLoad_MissingDefaultPathYieldsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Site, cfg.Site)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestLoad_ExpandsEnvAndKeepsExplicitValues(t *testing.T) {
	t.Setenv("DOCS_NATS", "nats://localhost:4222")
	path := writeConfig(t, `
site:
  name: Portal
branches:
  prefix: documentation/
  retries: 0
  retry_initial_delay: 2s
build:
  render_mode: NEVER
notify:
  nats_url: ${DOCS_NATS}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Portal", cfg.Site.Name)
	assert.Equal(t, "Documentación consolidada de todos los proyectos", cfg.Site.Description)
	assert.Equal(t, "documentation/", cfg.Branches.Prefix)
	assert.Equal(t, 0, cfg.Branches.Retries)
	assert.Equal(t, 2*time.Second, cfg.Branches.RetryInitial)
	assert.Equal(t, RenderModeNever, cfg.Build.RenderMode)
	assert.Equal(t, "nats://localhost:4222", cfg.Notify.NATSURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "site: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("DOCAGG_TEST_SITE=from-file\nDOCAGG_TEST_OTHER=other\n"), 0o600))
	t.Setenv("DOCAGG_TEST_SITE", "from-env")

	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  name: ${DOCAGG_TEST_SITE}\n  description: ${DOCAGG_TEST_OTHER}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Site.Name)
	assert.Equal(t, "other", cfg.Site.Description)
	_ = os.Unsetenv("DOCAGG_TEST_OTHER")
}

func TestNormalize_Enums(t *testing.T) {
	cfg := Default()
	cfg.Build.RenderMode = "Always "
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "JSON"

	res, err := Normalize(cfg)
	require.NoError(t, err)
	assert.Equal(t, RenderModeAlways, cfg.Build.RenderMode)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Len(t, res.Warnings, 3)
}

func TestNormalize_ClampsRetryDelay(t *testing.T) {
	cfg := Default()
	cfg.Branches.RetryInitial = time.Minute
	cfg.Branches.RetryMax = time.Second
	res, err := Normalize(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Branches.RetryInitial)
	assert.NotEmpty(t, res.Warnings)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize(nil)
	require.Error(t, err)

	cfg := Default()
	cfg.Branches.Remote = "  "
	_, err = Normalize(cfg)
	require.Error(t, err)

	cfg = Default()
	cfg.Notify.NATSURL = "nats://x"
	cfg.Notify.Subject = " "
	_, err = Normalize(cfg)
	require.Error(t, err)
}

func TestParseRenderMode(t *testing.T) {
	m, err := ParseRenderMode("Never")
	require.NoError(t, err)
	assert.Equal(t, RenderModeNever, m)

	_, err = ParseRenderMode("sometimes")
	require.Error(t, err)
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: LogLevelError}.SlogLevel(true))
	assert.Equal(t, slog.LevelWarn, LoggingConfig{Level: LogLevelWarn}.SlogLevel(false))
	assert.Equal(t, slog.LevelInfo, LoggingConfig{}.SlogLevel(false))
}
