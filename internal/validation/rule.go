// Package validation sanity-checks the aggregate site after composition.
//
// Rules never abort: every issue is collected and returned so the caller can
// report them together and decide whether to build.
package validation

import (
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
)

// Context carries the paths rules check against.
type Context struct {
	ProjectsDir string
	MkDocsFile  string
}

// ProjectRule checks one aggregated project.
type ProjectRule interface {
	// Name returns a short identifier for logging.
	Name() string
	// Check returns human-readable issues; stop reports that later rules for
	// this project would only repeat the problem.
	Check(vctx Context, m *manifest.ProjectManifest) (issues []string, stop bool)
}

// SiteRule checks the composed site as a whole.
type SiteRule interface {
	Name() string
	Check(vctx Context, ms []*manifest.ProjectManifest) []string
}

// Result is the outcome of a validation pass.
type Result struct {
	Issues []string
}

// OK reports whether no issues were found.
func (r Result) OK() bool { return len(r.Issues) == 0 }
