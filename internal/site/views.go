// Package site composes the aggregate site from accumulated manifests: the
// global project index page and mkdocs.yml with its navigation tree.
//
// Grouping, statistics, badges and emoji are plain functions returning
// render-ready views; templates only iterate over them.
package site

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docaggregator/internal/manifest"
)

// MaxListedTechnologies caps the technology names shown per project in the index.
const MaxListedTechnologies = 5

// Count is one bucket of a first-encounter ordered histogram.
type Count struct {
	Key string
	N   int
}

// Stats holds the run-level statistics of the global index.
type Stats struct {
	Total      int
	ByStatus   []Count
	ByCategory []Count
}

// ProjectEntry is one project as shown in the global index.
type ProjectEntry struct {
	Name         string
	Slug         string
	Description  string
	Status       string
	Version      string
	Badge        string
	Technologies []string
	Repository   string
}

// Link is the project's index page relative to the global index.
func (p ProjectEntry) Link() string { return "./" + p.Slug + "/index.md" }

// CategoryGroup is a category heading with its projects.
type CategoryGroup struct {
	Name     string
	Projects []ProjectEntry
}

// IndexView is everything the global index template needs.
type IndexView struct {
	Stats      Stats
	Featured   []ProjectEntry
	Categories []CategoryGroup
}

var statusEmoji = map[manifest.Status]string{
	manifest.StatusProduction:  "✅",
	manifest.StatusBeta:        "🔵",
	manifest.StatusDevelopment: "🟡",
	manifest.StatusDeprecated:  "⚫",
}

var badgeColor = map[manifest.Status]string{
	manifest.StatusProduction:  "green",
	manifest.StatusBeta:        "blue",
	manifest.StatusDevelopment: "yellow",
	manifest.StatusDeprecated:  "red",
}

// StatusEmoji returns the navigation glyph for a status; unknown statuses get ⚪.
func StatusEmoji(s manifest.Status) string {
	if e, ok := statusEmoji[s]; ok {
		return e
	}
	return "⚪"
}

// StatusBadge returns a shields.io badge image for a known status, or "".
func StatusBadge(s manifest.Status) string {
	color, ok := badgeColor[s]
	if !ok {
		return ""
	}
	label := cases.Title(language.Und).String(string(s))
	return "![" + label + "](https://img.shields.io/badge/" + label + "-" + color + ")"
}

// ComputeStats counts projects by status and category in first-encounter order.
func ComputeStats(ms []*manifest.ProjectManifest) Stats {
	st := Stats{Total: len(ms)}
	for _, m := range ms {
		st.ByStatus = bump(st.ByStatus, string(m.Status))
		st.ByCategory = bump(st.ByCategory, m.Meta.Category)
	}
	return st
}

func bump(counts []Count, key string) []Count {
	for i := range counts {
		if counts[i].Key == key {
			counts[i].N++
			return counts
		}
	}
	return append(counts, Count{Key: key, N: 1})
}

// FormatCounts renders counts as "a: 1, b: 2".
func FormatCounts(counts []Count) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, c.Key+": "+strconv.Itoa(c.N))
	}
	return strings.Join(parts, ", ")
}

// NewProjectEntry builds the index view of one manifest.
func NewProjectEntry(m *manifest.ProjectManifest) ProjectEntry {
	e := ProjectEntry{
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		Status:       string(m.Status),
		Version:      m.Version,
		Badge:        StatusBadge(m.Status),
		Technologies: m.TechnologyNames(MaxListedTechnologies),
		Repository:   m.Repository,
	}
	if e.Description == "" {
		e.Description = "Sin descripción"
	}
	if e.Repository == "" {
		e.Repository = "#"
	}
	return e
}

// Featured returns featured projects in accumulation order, regardless of priority.
func Featured(ms []*manifest.ProjectManifest) []ProjectEntry {
	var out []ProjectEntry
	for _, m := range ms {
		if m.Meta.Featured {
			out = append(out, NewProjectEntry(m))
		}
	}
	return out
}

// GroupAlphabetical groups projects by category, categories sorted
// lexicographically and projects within a category by name.
func GroupAlphabetical(ms []*manifest.ProjectManifest) []CategoryGroup {
	byCat := map[string][]*manifest.ProjectManifest{}
	for _, m := range ms {
		byCat[m.Meta.Category] = append(byCat[m.Meta.Category], m)
	}
	names := make([]string, 0, len(byCat))
	for name := range byCat {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		projects := byCat[name]
		sort.SliceStable(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
		g := CategoryGroup{Name: name}
		for _, m := range projects {
			g.Projects = append(g.Projects, NewProjectEntry(m))
		}
		groups = append(groups, g)
	}
	return groups
}

// NewIndexView assembles the global index view.
func NewIndexView(ms []*manifest.ProjectManifest) IndexView {
	return IndexView{
		Stats:      ComputeStats(ms),
		Featured:   Featured(ms),
		Categories: GroupAlphabetical(ms),
	}
}
