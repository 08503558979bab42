package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("copy_content", 150*time.Millisecond)
	pr.IncStageResult("copy_content", ResultSuccess)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.ObserveCheckoutDuration(time.Second, false)
	pr.IncCheckoutRetries(2)
	pr.IncCheckoutRetries(0)
	pr.IncProjectResult(ProjectAggregated)
	pr.IncProjectResult(ProjectAggregated)
	pr.IncProjectResult(ProjectSkipped)
	pr.SetProjectsAggregated(2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.InDelta(t, 3, values["docaggregator_project_results_total"], 0)
	assert.InDelta(t, 2, values["docaggregator_checkout_retries_total"], 0)
	assert.InDelta(t, 2, values["docaggregator_projects_aggregated"], 0)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetProjectsAggregated(3)
	pr.IncRunOutcome(OutcomeIssues)

	path := filepath.Join(t.TempDir(), "docaggregator.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docaggregator_projects_aggregated 3")
	assert.Contains(t, string(data), `docaggregator_run_outcomes_total{outcome="issues"} 1`)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.IncRunOutcome(OutcomeFailed)
	r.SetProjectsAggregated(1)
}
