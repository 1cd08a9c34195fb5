// Package metrics collects per-run counters for each pipeline stage.
// The stages are short-lived batch jobs, so instead of exposing a
// scrape endpoint the counters are pushed to an optional Prometheus
// Pushgateway when the run finishes.
package metrics
