package content

import (
	"embed"
	"time"

	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/templates"
)

//go:embed templates/*.tmpl
var embedded embed.FS

var projectIndexTemplate = templates.MustParseFS(embedded, "templates/project_index.md.tmpl", templates.Options{})

const (
	defaultDescription = "Sin descripción"
	defaultRepoLabel   = "No especificado"
	defaultRepoURL     = "#"
	defaultIcon        = "📄"
	timestampLayout    = "2006-01-02 15:04:05"
)

// ProjectIndexView is the render-ready form of a project's index page.
type ProjectIndexView struct {
	Name         string
	Description  string
	Status       string
	Version      string
	RepoLabel    string
	RepoURL      string
	Technologies []manifest.Technology
	Docs         []DocLink
	Updated      string
}

// DocLink is one entry of the "available documentation" list.
type DocLink struct {
	Icon   string
	Title  string
	Target string
}

// NewProjectIndexView fills display defaults from m.
func NewProjectIndexView(m *manifest.ProjectManifest, now time.Time) ProjectIndexView {
	v := ProjectIndexView{
		Name:         m.Name,
		Description:  m.Description,
		Status:       string(m.Status),
		Version:      m.Version,
		RepoLabel:    m.Repository,
		RepoURL:      m.Repository,
		Technologies: m.Technologies,
		Updated:      now.Format(timestampLayout),
	}
	if v.Description == "" {
		v.Description = defaultDescription
	}
	if v.RepoLabel == "" {
		v.RepoLabel = defaultRepoLabel
		v.RepoURL = defaultRepoURL
	}
	for _, item := range m.Structure {
		icon := item.Icon
		if icon == "" {
			icon = defaultIcon
		}
		v.Docs = append(v.Docs, DocLink{Icon: icon, Title: item.Title, Target: item.BaseName()})
	}
	return v
}

// RenderProjectIndex renders the index.md body for m.
func RenderProjectIndex(m *manifest.ProjectManifest, now time.Time) (string, error) {
	return templates.Execute(projectIndexTemplate, NewProjectIndexView(m, now))
}
