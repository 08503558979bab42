package site

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docaggregator/internal/config"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
)

// MkDocsConfig is the generated mkdocs.yml document. Field order is output order.
type MkDocsConfig struct {
	SiteName        string      `yaml:"site_name"`
	SiteDescription string      `yaml:"site_description"`
	SiteURL         string      `yaml:"site_url"`
	RepoURL         string      `yaml:"repo_url"`
	EditURI         string      `yaml:"edit_uri"`
	Theme           MkDocsTheme `yaml:"theme"`
	Plugins         []string    `yaml:"plugins"`
	Extra           MkDocsExtra `yaml:"extra"`
	Nav             []NavItem   `yaml:"nav"`
}

type MkDocsTheme struct {
	Name     string        `yaml:"name"`
	Palette  MkDocsPalette `yaml:"palette"`
	Features []string      `yaml:"features"`
	Language string        `yaml:"language"`
}

type MkDocsPalette struct {
	Primary string `yaml:"primary"`
	Accent  string `yaml:"accent"`
}

type MkDocsExtra struct {
	Social []MkDocsSocial `yaml:"social"`
}

type MkDocsSocial struct {
	Icon string `yaml:"icon"`
	Link string `yaml:"link"`
}

// BuildMkDocsConfig combines site metadata with the navigation for ms.
func BuildMkDocsConfig(site config.SiteConfig, ms []*manifest.ProjectManifest) MkDocsConfig {
	cfg := MkDocsConfig{
		SiteName:        site.Name,
		SiteDescription: site.Description,
		SiteURL:         site.URL,
		RepoURL:         site.RepoURL,
		EditURI:         site.EditURI,
		Theme: MkDocsTheme{
			Name:     site.Theme.Name,
			Palette:  MkDocsPalette{Primary: site.Theme.Palette.Primary, Accent: site.Theme.Palette.Accent},
			Features: site.Theme.Features,
			Language: site.Theme.Language,
		},
		Plugins: site.Plugins,
		Nav:     BuildNav(ms),
	}
	for _, s := range site.Social {
		cfg.Extra.Social = append(cfg.Extra.Social, MkDocsSocial{Icon: s.Icon, Link: s.Link})
	}
	return cfg
}

// Marshal encodes cfg as YAML with two-space indentation.
func (cfg MkDocsConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode mkdocs config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode mkdocs config: %w", err)
	}
	return restoreGlyphs(buf.Bytes()), nil
}

// restoreGlyphs rewrites the \UXXXXXXXX escapes yaml.v3 emits for characters
// outside the Basic Multilingual Plane (the nav emoji) as raw UTF-8. Only
// double-quoted scalars are touched; a backslash anywhere else is literal text.
func restoreGlyphs(in []byte) []byte {
	out := make([]byte, 0, len(in))
	var quote byte
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case quote == '"' && c == '\\' && i+1 < len(in):
			if r, ok := astralEscape(in[i+1:]); ok {
				out = utf8.AppendRune(out, r)
				i += 9
			} else {
				out = append(out, c, in[i+1])
				i++
			}
			continue
		case quote == '\'' && c == '\'' && i+1 < len(in) && in[i+1] == '\'':
			out = append(out, c, c)
			i++
			continue
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '"' || c == '\'') && opensScalar(out):
			quote = c
		}
		out = append(out, c)
	}
	return out
}

// opensScalar reports whether a quote following out starts a quoted scalar:
// after indentation and sequence dashes only, or right after a key.
func opensScalar(out []byte) bool {
	line := out[bytes.LastIndexByte(out, '\n')+1:]
	if len(bytes.TrimLeft(line, " -")) == 0 {
		return true
	}
	return bytes.HasSuffix(line, []byte(": "))
}

// astralEscape decodes "UXXXXXXXX" at the start of b when it names a
// printable rune outside the Basic Multilingual Plane.
func astralEscape(b []byte) (rune, bool) {
	if len(b) < 9 || b[0] != 'U' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[1:9]), 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if r <= 0xFFFF || r > unicode.MaxRune || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}
