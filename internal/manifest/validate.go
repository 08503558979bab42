package manifest

import (
	"errors"
	"fmt"
	"strings"
)

func (d *document) validate() error {
	if d.Project == nil {
		return errors.New("required field 'project' missing")
	}
	if d.Documentation == nil {
		return errors.New("required field 'documentation' missing")
	}
	if d.Documentation.Structure == nil {
		return errors.New("required field 'documentation.structure' missing")
	}
	if strings.TrimSpace(d.Project.Name) == "" {
		return errors.New("required field 'project.name' missing")
	}
	if err := ValidateSlug(d.Project.Slug); err != nil {
		return err
	}
	for i, item := range *d.Documentation.Structure {
		if strings.TrimSpace(item.Source) == "" {
			return fmt.Errorf("documentation.structure[%d]: source is required", i)
		}
		if strings.TrimSpace(item.Title) == "" {
			return fmt.Errorf("documentation.structure[%d]: title is required", i)
		}
	}
	return nil
}

// ValidateSlug checks that slug can be used as a single path segment.
func ValidateSlug(slug string) error {
	s := strings.TrimSpace(slug)
	switch {
	case s == "":
		return errors.New("required field 'project.slug' missing")
	case s == "." || s == "..":
		return fmt.Errorf("slug %q is not a valid path segment", s)
	case strings.ContainsAny(s, `/\`):
		return fmt.Errorf("slug %q must not contain path separators", s)
	}
	return nil
}
