package site

import (
	"sort"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docaggregator/internal/manifest"
)

// ProjectsDirName is the folder below docs_dir holding every project slot.
const ProjectsDirName = "proyectos"

// NavItem is one mkdocs nav entry: a titled page or a titled section.
type NavItem struct {
	Title    string
	Path     string
	Children []NavItem
}

// MarshalYAML encodes the entry as the single-key mapping mkdocs expects.
func (n NavItem) MarshalYAML() (any, error) {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Title}
	var value yaml.Node
	if n.Children != nil {
		if err := value.Encode(n.Children); err != nil {
			return nil, err
		}
	} else {
		value = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Path}
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{key, &value}}, nil
}

// CategoryOrder returns categories in first-encounter (discovery) order.
func CategoryOrder(ms []*manifest.ProjectManifest) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range ms {
		if !seen[m.Meta.Category] {
			seen[m.Meta.Category] = true
			out = append(out, m.Meta.Category)
		}
	}
	return out
}

// SortByPriority orders projects by descending priority, then ascending name.
func SortByPriority(ms []*manifest.ProjectManifest) []*manifest.ProjectManifest {
	out := append([]*manifest.ProjectManifest(nil), ms...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Meta.Priority != out[j].Meta.Priority {
			return out[i].Meta.Priority > out[j].Meta.Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ProjectNav builds a project's subtree: the summary page then one entry per
// documentation item. Directories link to their index.md.
func ProjectNav(m *manifest.ProjectManifest) NavItem {
	base := ProjectsDirName + "/" + m.Slug + "/"
	children := []NavItem{{Title: "Resumen", Path: base + "index.md"}}
	for _, item := range m.Structure {
		path := base + item.BaseName()
		if item.IsDirectory() {
			path += "/index.md"
		}
		children = append(children, NavItem{Title: item.Title, Path: path})
	}
	return NavItem{Title: StatusEmoji(m.Status) + " " + m.Name, Children: children}
}

// ProjectsNav builds the children of the projects section: the global index
// link, then one section per category in discovery order.
func ProjectsNav(ms []*manifest.ProjectManifest) []NavItem {
	items := []NavItem{{Title: "Índice de Proyectos", Path: ProjectsDirName + "/index.md"}}
	byCat := map[string][]NavItem{}
	for _, m := range SortByPriority(ms) {
		byCat[m.Meta.Category] = append(byCat[m.Meta.Category], ProjectNav(m))
	}
	for _, cat := range CategoryOrder(ms) {
		items = append(items, NavItem{Title: "📁 " + cat, Children: byCat[cat]})
	}
	return items
}

// BuildNav returns the full navigation tree.
func BuildNav(ms []*manifest.ProjectManifest) []NavItem {
	return []NavItem{
		{Title: "🏠 Inicio", Path: "index.md"},
		{Title: "📚 Proyectos", Children: ProjectsNav(ms)},
		{Title: "📖 Guías MkDocs", Children: []NavItem{{Title: "About MkDocs", Path: "about-mkdocs.md"}}},
	}
}
