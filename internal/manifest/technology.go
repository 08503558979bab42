package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Technology is one entry of a project's stack. In YAML it is either a bare
// name or a {name, version} mapping; both decode into this shape and
// Versioned records which form was used.
type Technology struct {
	Name      string
	Version   string
	Versioned bool
}

// UnmarshalYAML accepts the scalar and mapping forms.
func (t *Technology) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.Name = strings.TrimSpace(node.Value)
		t.Version = ""
		t.Versioned = false
		return nil
	case yaml.MappingNode:
		var rec struct {
			Name    string `yaml:"name"`
			Version string `yaml:"version"`
		}
		if err := node.Decode(&rec); err != nil {
			return err
		}
		t.Name = strings.TrimSpace(rec.Name)
		t.Version = strings.TrimSpace(rec.Version)
		t.Versioned = true
		if t.Name == "" {
			t.Name = "Unknown"
		}
		return nil
	default:
		return fmt.Errorf("line %d: technology must be a name or a {name, version} mapping", node.Line)
	}
}

// HasVersion reports whether the entry was declared as a {name, version}
// mapping. The version itself may still be empty.
func (t Technology) HasVersion() bool { return t.Versioned }

// TechnologyNames returns the names of the first n technologies (all when n < 0).
func (m *ProjectManifest) TechnologyNames(n int) []string {
	techs := m.Technologies
	if n >= 0 && len(techs) > n {
		techs = techs[:n]
	}
	names := make([]string, 0, len(techs))
	for _, t := range techs {
		names = append(names, t.Name)
	}
	return names
}
