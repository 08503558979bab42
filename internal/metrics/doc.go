// Package metrics provides the observability hooks of an aggregation run.
//
// Components receive a Recorder. NoopRecorder is the default so callers never
// nil-check; PrometheusRecorder is activated by --metrics-file, and its registry
// is written in the node_exporter textfile format after each run.
package metrics
