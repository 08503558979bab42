package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "docaggregator.yaml"

// Config represents the aggregator configuration. Every section is optional;
// missing values are filled by applyDefaults.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Branches BranchesConfig `yaml:"branches"`
	Build    BuildConfig    `yaml:"build"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// SiteConfig holds the metadata written to the top of mkdocs.yml.
type SiteConfig struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	URL         string       `yaml:"url"`
	RepoURL     string       `yaml:"repo_url"`
	EditURI     string       `yaml:"edit_uri"`
	Theme       ThemeConfig  `yaml:"theme"`
	Plugins     []string     `yaml:"plugins"`
	Social      []SocialLink `yaml:"social"`
}

// ThemeConfig mirrors the mkdocs-material theme block.
type ThemeConfig struct {
	Name     string        `yaml:"name"`
	Palette  PaletteConfig `yaml:"palette"`
	Features []string      `yaml:"features"`
	Language string        `yaml:"language"`
}

type PaletteConfig struct {
	Primary string `yaml:"primary"`
	Accent  string `yaml:"accent"`
}

type SocialLink struct {
	Icon string `yaml:"icon"`
	Link string `yaml:"link"`
}

// BranchesConfig controls branch-mode discovery and checkout.
type BranchesConfig struct {
	Remote       string           `yaml:"remote"`
	Prefix       string           `yaml:"prefix"`
	Depth        int              `yaml:"depth"`
	TempRoot     string           `yaml:"temp_root"`
	Retries      int              `yaml:"retries"`
	RetryBackoff RetryBackoffMode `yaml:"retry_backoff"`
	RetryInitial time.Duration    `yaml:"retry_initial_delay"`
	RetryMax     time.Duration    `yaml:"retry_max_delay"`
}

// BuildConfig controls the final MkDocs invocation.
type BuildConfig struct {
	RenderMode   RenderMode `yaml:"render_mode"`
	MkDocsBinary string     `yaml:"mkdocs_binary"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

type MetricsConfig struct {
	File string `yaml:"file"`
}

// NotifyConfig enables publishing the run report to NATS when URL is set.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Branches: BranchesConfig{Retries: DefaultRetries}}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from path. An empty path, or the default path when
// it does not exist, yields Default(). Environment variables from .env files are
// loaded first and ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, derrors.ConfigError(fmt.Sprintf("read config file %s", path)).
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	// retries is seeded before decoding so an explicit 0 survives
	cfg := &Config{Branches: BranchesConfig{Retries: DefaultRetries}}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, derrors.ConfigError(fmt.Sprintf("parse config file %s", path)).
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	applyDefaults(cfg)
	res, err := Normalize(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalized", "path", path, "warning", w)
	}
	return cfg, nil
}
