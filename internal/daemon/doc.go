// Package daemon keeps docaggregator running and re-triggers full aggregation
// runs on filesystem changes (fsnotify) or on a fixed interval (gocron).
// Runs are strictly sequential: requests arriving while a run is in progress
// collapse into exactly one follow-up run.
package daemon
