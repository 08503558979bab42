package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docaggregator"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	stageDuration    *prom.HistogramVec
	stageResults     *prom.CounterVec
	runDuration      prom.Histogram
	runOutcome       *prom.CounterVec
	checkoutDuration *prom.HistogramVec
	checkoutRetries  prom.Counter
	projectResults   *prom.CounterVec
	projects         prom.Gauge
}

// NewPrometheusRecorder constructs and registers the run metrics on reg, or on
// a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual run stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total aggregation run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Aggregation runs by final status",
	}, []string{"outcome"})
	pr.checkoutDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "Duration of branch checkouts including retries",
		Buckets:   prom.DefBuckets,
	}, []string{"result"})
	pr.checkoutRetries = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_retries_total",
		Help:      "Clone attempts beyond the first",
	})
	pr.projectResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "project_results_total",
		Help:      "Discovered project sources by result",
	}, []string{"result"})
	pr.projects = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "projects_aggregated",
		Help:      "Projects aggregated by the last run",
	})
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.runOutcome,
		pr.checkoutDuration, pr.checkoutRetries, pr.projectResults, pr.projects)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveCheckoutDuration(d time.Duration, success bool) {
	res := "failed"
	if success {
		res = "success"
	}
	p.checkoutDuration.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCheckoutRetries(n int) {
	if n > 0 {
		p.checkoutRetries.Add(float64(n))
	}
}

func (p *PrometheusRecorder) IncProjectResult(result ProjectResult) {
	p.projectResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetProjectsAggregated(n int) {
	p.projects.Set(float64(n))
}

// WriteTextfile writes the registry to path in the Prometheus text format.
// The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
