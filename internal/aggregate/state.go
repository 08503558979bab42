package aggregate

import (
	"time"

	"git.home.luguber.info/inful/docaggregator/internal/content"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
	"git.home.luguber.info/inful/docaggregator/internal/render"
	"git.home.luguber.info/inful/docaggregator/internal/site"
	"git.home.luguber.info/inful/docaggregator/internal/source"
)

// ProjectRecord is what the run did with one aggregated project.
type ProjectRecord struct {
	Slug    string                `json:"slug"`
	Name    string                `json:"name"`
	Source  string                `json:"source"`
	Copied  int                   `json:"copied"`
	Missing []string              `json:"missing,omitempty"`
	Failed  []content.ItemFailure `json:"failed,omitempty"`
}

// State accumulates everything a run learns. It lives for one run only.
type State struct {
	RunID   string
	BaseDir string
	Layout  site.Layout
	Start   time.Time

	// Manifests holds aggregated projects in discovery order.
	Manifests []*manifest.ProjectManifest
	Projects  []ProjectRecord
	Skipped   []source.Skip
	Issues    []string
	Timings   map[StageName]time.Duration

	Build render.Outcome

	slugs map[string]string
}

func newState(runID, baseDir string, layout site.Layout, now time.Time) *State {
	return &State{
		RunID:   runID,
		BaseDir: baseDir,
		Layout:  layout,
		Start:   now,
		Timings: make(map[StageName]time.Duration),
		slugs:   make(map[string]string),
	}
}

// slugOwner returns the source that already aggregated slug.
func (s *State) slugOwner(slug string) (string, bool) {
	src, ok := s.slugs[slug]
	return src, ok
}

func (s *State) addProject(m *manifest.ProjectManifest, src string, res *content.Result) {
	s.Manifests = append(s.Manifests, m)
	s.slugs[m.Slug] = src
	rec := ProjectRecord{Slug: m.Slug, Name: m.Name, Source: src}
	if res != nil {
		rec.Copied = len(res.Copied)
		rec.Missing = res.Missing
		rec.Failed = res.Failed
	}
	s.Projects = append(s.Projects, rec)
}

func (s *State) skip(src, reason string) {
	s.Skipped = append(s.Skipped, source.Skip{Source: src, Reason: reason})
}
