// Package scaffold lays out a new MkDocs documentation project: directory
// skeleton, site configuration, Python requirements, CI workflow, Makefile
// and sample pages. Output depends only on the project name and type.
package scaffold

import (
	"embed"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/foundation/normalization"
	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/templates"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Square-bracket delimiters keep GitHub Actions `${{ }}` expressions literal.
var tplOpts = templates.Options{LeftDelim: "[[", RightDelim: "]]"}

// Type selects between a single-project site and a central portal.
type Type string

const (
	TypeIndividual Type = "individual"
	TypeCentral    Type = "central"
)

// Theme is accepted for compatibility; generated files always use readthedocs.
type Theme string

const (
	ThemeReadTheDocs Theme = "readthedocs"
	ThemeMaterial    Theme = "material"
	ThemeGitBook     Theme = "gitbook"
)

var (
	typeEnum = normalization.NewEnum("type", map[string]Type{
		"individual": TypeIndividual,
		"central":    TypeCentral,
	}, TypeIndividual)
	themeEnum = normalization.NewEnum("theme", map[string]Theme{
		"readthedocs": ThemeReadTheDocs,
		"material":    ThemeMaterial,
		"gitbook":     ThemeGitBook,
	}, ThemeReadTheDocs)
)

// ParseType validates a --type value.
func ParseType(raw string) (Type, error) { return typeEnum.Parse(raw) }

// ParseTheme validates a --theme value.
func ParseTheme(raw string) (Theme, error) { return themeEnum.Parse(raw) }

// Directories is the fixed content skeleton, relative to the target path.
var Directories = []string{
	"docs/docs/getting-started",
	"docs/docs/api",
	"docs/docs/guides",
	"docs/docs/examples",
}

type fileSpec struct {
	rel      string
	template string
}

func filesFor(t Type) []fileSpec {
	mkdocs := "mkdocs_individual.yml.tmpl"
	if t == TypeCentral {
		mkdocs = "mkdocs_central.yml.tmpl"
	}
	return []fileSpec{
		{"docs/mkdocs.yml", mkdocs},
		{"docs/requirements.txt", "requirements.txt.tmpl"},
		{".github/workflows/docs.yml", "workflow.yml.tmpl"},
		{"Makefile", "Makefile.tmpl"},
		{"docs/docs/index.md", "index.md.tmpl"},
		{"docs/docs/getting-started/installation.md", "installation.md.tmpl"},
		{"docs/README.md", "README.md.tmpl"},
	}
}

// Options describe one scaffolding request.
type Options struct {
	ProjectName string
	Type        Type
	Path        string
	Theme       Theme
}

// View is the data every template sees.
type View struct {
	Name    string
	Slug    string
	Module  string
	Central bool
}

// NewView derives the template data from the project name.
func NewView(name string, t Type) View {
	lower := cases.Lower(language.Und).String(strings.TrimSpace(name))
	return View{
		Name:    strings.TrimSpace(name),
		Slug:    strings.ReplaceAll(lower, " ", "-"),
		Module:  strings.NewReplacer(" ", "_", "-", "_").Replace(lower),
		Central: t == TypeCentral,
	}
}

// Result lists what Generate created, relative to the target path.
type Result struct {
	Root        string
	Directories []string
	Files       []string
}

// Generate writes the skeleton below opts.Path. Existing files are overwritten.
func Generate(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.ProjectName) == "" {
		return nil, errors.ValidationError("project name is required").Build()
	}
	if opts.Type == "" {
		opts.Type = TypeIndividual
	}
	if _, ok := typeEnum.Lookup(string(opts.Type)); !ok {
		return nil, errors.ValidationError("unknown documentation type").WithContext("type", string(opts.Type)).Build()
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, errors.FileSystemError("resolve target path").WithCause(err).Build()
	}

	res := &Result{Root: root}
	for _, dir := range Directories {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o750); err != nil {
			return res, errors.FileSystemError("create directory").WithCause(err).WithContext("path", dir).Build()
		}
		res.Directories = append(res.Directories, dir)
	}

	view := NewView(opts.ProjectName, opts.Type)
	for _, f := range filesFor(opts.Type) {
		body, err := renderTemplate(f.template, view)
		if err != nil {
			return res, errors.InternalError("render scaffold template").WithCause(err).WithContext("template", f.template).Build()
		}
		if _, err := templates.WriteFile(root, filepath.FromSlash(f.rel), body, true); err != nil {
			return res, errors.FileSystemError("write scaffold file").WithCause(err).WithContext("path", f.rel).Build()
		}
		slog.Debug("Scaffold file written", logfields.Path(f.rel))
		res.Files = append(res.Files, f.rel)
	}
	slog.Info("Documentation scaffold created", logfields.Path(root), logfields.Count(len(res.Files)))
	return res, nil
}

func renderTemplate(name string, view View) (string, error) {
	tpl := templates.MustParseFS(templateFS, "templates/"+name, tplOpts)
	return templates.Execute(tpl, view)
}
