package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// RunOutcome is the final status of an aggregation run.
type RunOutcome string

const (
	OutcomeSuccess     RunOutcome = "success"
	OutcomeIssues      RunOutcome = "issues"
	OutcomeBuildFailed RunOutcome = "build_failed"
	OutcomeFailed      RunOutcome = "failed"
	OutcomeCanceled    RunOutcome = "canceled"
)

// ProjectResult labels what happened to one discovered source.
type ProjectResult string

const (
	ProjectAggregated ProjectResult = "aggregated"
	ProjectSkipped    ProjectResult = "skipped"
)

// Recorder defines observability hooks for runs, stages and checkouts.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
	ObserveCheckoutDuration(d time.Duration, success bool)
	IncCheckoutRetries(n int)
	IncProjectResult(result ProjectResult)
	SetProjectsAggregated(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel) {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(RunOutcome) {}
func (NoopRecorder) ObserveCheckoutDuration(time.Duration, bool) {}
func (NoopRecorder) IncCheckoutRetries(int) {}
func (NoopRecorder) IncProjectResult(ProjectResult) {}
func (NoopRecorder) SetProjectsAggregated(int) {}
