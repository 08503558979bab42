// Package manifest loads the per-project docs.yaml that describes a project's
// metadata and documentation layout.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
)

// FileName is the manifest file looked up in every project root.
const FileName = "docs.yaml"

var (
	// ErrNotFound means the project root has no manifest. Callers skip the project with a warning.
	ErrNotFound = errors.New("manifest not found")
	// ErrInvalid means the manifest exists but cannot be used. Callers skip the project with an error.
	ErrInvalid = errors.New("manifest invalid")
)

const (
	DefaultVersion  = "0.0.0"
	DefaultPriority = 50
	DefaultCategory = "General"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusProduction  Status = "production"
	StatusBeta        Status = "beta"
	StatusDevelopment Status = "development"
	StatusDeprecated  Status = "deprecated"
)

// DocType says whether a DocItem points at a file or a directory.
type DocType string

const (
	DocTypeFile      DocType = "file"
	DocTypeDirectory DocType = "directory"
)

// ProjectManifest is the normalized form of a docs.yaml file.
type ProjectManifest struct {
	Name         string
	Slug         string
	Description  string
	Status       Status
	Version      string
	Repository   string
	Technologies []Technology
	Structure    []DocItem
	Assets       []string
	Meta         AggregatorMeta

	// Path is the manifest file the value was loaded from.
	Path string
}

// DocItem is one documentation source declared by a project.
type DocItem struct {
	Source string  `yaml:"source"`
	Title  string  `yaml:"title"`
	Type   DocType `yaml:"type"`
	Icon   string  `yaml:"icon"`
}

// BaseName is the name the item is copied under inside the project slot.
func (d DocItem) BaseName() string {
	return filepath.Base(filepath.Clean(d.Source))
}

// IsDirectory reports whether the item was declared as a directory.
func (d DocItem) IsDirectory() bool { return d.Type == DocTypeDirectory }

// AggregatorMeta controls placement of the project in the aggregate site.
type AggregatorMeta struct {
	Priority int
	Category string
	Featured bool
}

// document is the raw YAML shape; pointer fields distinguish absent keys.
type document struct {
	Project       *projectSection       `yaml:"project"`
	Documentation *documentationSection `yaml:"documentation"`
	Aggregator    *aggregatorSection    `yaml:"aggregator"`
}

type projectSection struct {
	Name         string       `yaml:"name"`
	Slug         string       `yaml:"slug"`
	Description  string       `yaml:"description"`
	Status       string       `yaml:"status"`
	Version      string       `yaml:"version"`
	Repository   string       `yaml:"repository"`
	Technologies []Technology `yaml:"technologies"`
}

type documentationSection struct {
	Structure *[]DocItem `yaml:"structure"`
	Assets    []string   `yaml:"assets"`
}

type aggregatorSection struct {
	Priority *int   `yaml:"priority"`
	Category string `yaml:"category"`
	Featured bool   `yaml:"featured"`
}

// Load reads FileName from projectRoot. It returns an error wrapping
// ErrNotFound or ErrInvalid; it never panics on malformed input.
func Load(projectRoot string) (*ProjectManifest, error) {
	path := filepath.Join(projectRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.WrapError(fmt.Errorf("%w: %s", ErrNotFound, path), derrors.CategoryNotFound, "load manifest").
				Warning().
				WithContext("path", path).
				Build()
		}
		return nil, invalid(path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, invalid(path, err)
	}
	m.Path = path
	return m, nil
}

func invalid(path string, cause error) error {
	return derrors.ManifestError("load manifest").
		WithCause(fmt.Errorf("%w: %s: %w", ErrInvalid, path, cause)).
		WithContext("path", path).
		Build()
}

// Parse decodes and validates manifest bytes and applies defaults.
func Parse(data []byte) (*ProjectManifest, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc.normalize(), nil
}

func (d *document) normalize() *ProjectManifest {
	p := d.Project
	m := &ProjectManifest{
		Name:         strings.TrimSpace(p.Name),
		Slug:         strings.TrimSpace(p.Slug),
		Description:  p.Description,
		Status:       Status(strings.ToLower(strings.TrimSpace(p.Status))),
		Version:      strings.TrimSpace(p.Version),
		Repository:   strings.TrimSpace(p.Repository),
		Technologies: p.Technologies,
		Structure:    append([]DocItem(nil), (*d.Documentation.Structure)...),
		Assets:       d.Documentation.Assets,
		Meta:         AggregatorMeta{Priority: DefaultPriority, Category: DefaultCategory},
	}
	if m.Status == "" {
		m.Status = StatusDevelopment
	}
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	for i := range m.Structure {
		if m.Structure[i].Type != DocTypeDirectory {
			m.Structure[i].Type = DocTypeFile
		}
	}
	if a := d.Aggregator; a != nil {
		if a.Priority != nil {
			m.Meta.Priority = *a.Priority
		}
		if c := strings.TrimSpace(a.Category); c != "" {
			m.Meta.Category = c
		}
		m.Meta.Featured = a.Featured
	}
	return m
}
