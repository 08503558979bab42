package config

import (
	"os"
	"time"
)

const (
	defaultSiteName        = "Centro de Documentación"
	defaultSiteDescription = "Documentación consolidada de todos los proyectos"
	defaultSiteURL         = "https://tu-usuario.github.io/docs/"
	defaultRepoURL         = "https://github.com/tu-usuario/docs"
	defaultEditURI         = "edit/main/docs/docs"
	defaultSocialLink      = "https://github.com/tu-usuario"

	DefaultRemote       = "origin"
	DefaultBranchPrefix = "docs/"
	DefaultSubject      = "docs.aggregated"
	DefaultMkDocsBinary = "mkdocs"
	DefaultRetries      = 2
)

// applyDefaults fills zero values. Explicitly configured values are left alone.
func applyDefaults(cfg *Config) {
	s := &cfg.Site
	if s.Name == "" {
		s.Name = defaultSiteName
	}
	if s.Description == "" {
		s.Description = defaultSiteDescription
	}
	if s.URL == "" {
		s.URL = defaultSiteURL
	}
	if s.RepoURL == "" {
		s.RepoURL = defaultRepoURL
	}
	if s.EditURI == "" {
		s.EditURI = defaultEditURI
	}
	if s.Theme.Name == "" {
		s.Theme.Name = "material"
	}
	if s.Theme.Palette.Primary == "" {
		s.Theme.Palette.Primary = "blue"
	}
	if s.Theme.Palette.Accent == "" {
		s.Theme.Palette.Accent = "blue"
	}
	if len(s.Theme.Features) == 0 {
		s.Theme.Features = []string{
			"navigation.tabs",
			"navigation.sections",
			"navigation.expand",
			"search.highlight",
			"search.share",
		}
	}
	if s.Theme.Language == "" {
		s.Theme.Language = "es"
	}
	if len(s.Plugins) == 0 {
		s.Plugins = []string{"search", "tags"}
	}
	if len(s.Social) == 0 {
		s.Social = []SocialLink{{Icon: "fontawesome/brands/github", Link: defaultSocialLink}}
	}

	b := &cfg.Branches
	if b.Remote == "" {
		b.Remote = DefaultRemote
	}
	if b.Prefix == "" {
		b.Prefix = DefaultBranchPrefix
	}
	if b.Depth <= 0 {
		b.Depth = 1
	}
	if b.TempRoot == "" {
		b.TempRoot = os.TempDir()
	}
	if b.Retries < 0 {
		b.Retries = 0
	}
	if b.RetryBackoff == "" {
		b.RetryBackoff = RetryBackoffExponential
	}
	if b.RetryInitial <= 0 {
		b.RetryInitial = time.Second
	}
	if b.RetryMax <= 0 {
		b.RetryMax = 30 * time.Second
	}

	if cfg.Build.RenderMode == "" {
		cfg.Build.RenderMode = RenderModeAuto
	}
	if cfg.Build.MkDocsBinary == "" {
		cfg.Build.MkDocsBinary = DefaultMkDocsBinary
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultSubject
	}
}
