package site

import (
	"embed"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/templates"
)

//go:embed templates/*.tmpl
var embedded embed.FS

var projectsIndexTemplate = templates.MustParseFS(embedded, "templates/projects_index.md.tmpl", templates.Options{
	Funcs: template.FuncMap{
		"counts": FormatCounts,
		"join":   strings.Join,
	},
})

// RenderProjectsIndex renders the global project index page.
func RenderProjectsIndex(ms []*manifest.ProjectManifest) (string, error) {
	return templates.Execute(projectsIndexTemplate, NewIndexView(ms))
}
