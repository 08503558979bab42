package validation

import (
	"log/slog"

	"git.home.luguber.info/inful/docaggregator/internal/logfields"
	"git.home.luguber.info/inful/docaggregator/internal/manifest"
)

// Validator runs project rules for every manifest, then site rules.
type Validator struct {
	project []ProjectRule
	site    []SiteRule
}

// NewValidator returns a validator with the given rules.
func NewValidator(project []ProjectRule, site []SiteRule) *Validator {
	return &Validator{project: project, site: site}
}

// Default checks each project slot for a directory with index.md, and the
// site for its global index and mkdocs.yml.
func Default() *Validator {
	return NewValidator(
		[]ProjectRule{ProjectDirRule{}, RequiredFilesRule{Files: []string{"index.md"}}},
		[]SiteRule{SiteFilesRule{}},
	)
}

// Validate collects issues for ms. It never stops early on an issue.
func (v *Validator) Validate(vctx Context, ms []*manifest.ProjectManifest) Result {
	var res Result
	for _, m := range ms {
		for _, rule := range v.project {
			issues, stop := rule.Check(vctx, m)
			for _, issue := range issues {
				slog.Debug("Validation issue", slog.String("rule", rule.Name()), logfields.Slug(m.Slug), slog.String("issue", issue))
			}
			res.Issues = append(res.Issues, issues...)
			if stop {
				break
			}
		}
	}
	for _, rule := range v.site {
		res.Issues = append(res.Issues, rule.Check(vctx, ms)...)
	}

	if res.OK() {
		slog.Info("Validation completed without issues", logfields.Count(len(ms)))
	} else {
		slog.Warn("Validation found issues", logfields.Count(len(res.Issues)))
		for _, issue := range res.Issues {
			slog.Warn("  - " + issue)
		}
	}
	return res
}
