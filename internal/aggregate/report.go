package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docaggregator/internal/metrics"
	"git.home.luguber.info/inful/docaggregator/internal/render"
	"git.home.luguber.info/inful/docaggregator/internal/source"
)

// ReportFile is written next to mkdocs.yml, outside docs_dir.
const ReportFile = "aggregation-report.json"

const reportSchemaVersion = 1

// Report is the machine-readable summary of a run.
type Report struct {
	SchemaVersion int                 `json:"schema_version"`
	RunID         string              `json:"run_id"`
	Mode          source.Mode         `json:"mode"`
	Start         time.Time           `json:"start"`
	End           time.Time           `json:"end"`
	DurationMS    int64               `json:"duration_ms"`
	Aggregated    int                 `json:"aggregated"`
	Projects      []ProjectRecord     `json:"projects"`
	Skipped       []source.Skip       `json:"skipped"`
	Issues        []string            `json:"issues"`
	StageMS       map[StageName]int64 `json:"stage_ms"`
	Build         render.Outcome      `json:"build,omitempty"`
	Outcome       metrics.RunOutcome  `json:"outcome"`
	Error         string              `json:"error,omitempty"`
}

func newReport(st *State, mode source.Mode, end time.Time, outcome metrics.RunOutcome, runErr error) *Report {
	r := &Report{
		SchemaVersion: reportSchemaVersion,
		RunID:         st.RunID,
		Mode:          mode,
		Start:         st.Start,
		End:           end,
		DurationMS:    end.Sub(st.Start).Milliseconds(),
		Aggregated:    len(st.Manifests),
		Projects:      st.Projects,
		Skipped:       st.Skipped,
		Issues:        st.Issues,
		StageMS:       make(map[StageName]int64, len(st.Timings)),
		Build:         st.Build,
		Outcome:       outcome,
	}
	for name, d := range st.Timings {
		r.StageMS[name] = d.Milliseconds()
	}
	// Stable JSON: empty lists rather than null.
	if r.Projects == nil {
		r.Projects = []ProjectRecord{}
	}
	if r.Skipped == nil {
		r.Skipped = []source.Skip{}
	}
	if r.Issues == nil {
		r.Issues = []string{}
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// Persist writes the report atomically into dir.
func (r *Report) Persist(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("ensure report dir: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report json: %w", err)
	}
	path := filepath.Join(dir, ReportFile)
	tmp := path + ".tmp"
	// #nosec G306 -- report is a public build artifact
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("atomic rename report: %w", err)
	}
	return path, nil
}
