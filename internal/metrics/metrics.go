package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/joe-lloyd/model-blog/internal/logging"
)

// Run collects counters for one pipeline stage invocation. Each stage
// creates its own Run, increments counters while working, and reports
// the totals once at the end.
type Run struct {
	job      string
	registry *prometheus.Registry

	VariantsGenerated prometheus.Counter
	VariantsSkipped   prometheus.Counter
	VariantsFailed    prometheus.Counter

	FilesUploaded prometheus.Counter
	FilesSkipped  prometheus.Counter

	DocumentsUpdated prometheus.Counter
}

// NewRun creates a metrics run for the named stage job.
func NewRun(job string) *Run {
	registry := prometheus.NewRegistry()

	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Name: "model_blog_" + name,
			Help: help,
		})
		registry.MustRegister(c)
		return c
	}

	return &Run{
		job:      job,
		registry: registry,

		VariantsGenerated: counter("variants_generated_total", "Derived media files generated"),
		VariantsSkipped:   counter("variants_skipped_total", "Derived media files skipped as already present"),
		VariantsFailed:    counter("variants_failed_total", "Derived media files that failed to generate"),

		FilesUploaded: counter("files_uploaded_total", "Files uploaded to object storage"),
		FilesSkipped:  counter("files_upload_skipped_total", "Files skipped because the remote object exists"),

		DocumentsUpdated: counter("documents_updated_total", "Front-matter documents rewritten"),
	}
}

// Report pushes the run's counters to the Pushgateway at gatewayURL, or
// does nothing when no gateway is configured. Push failures are logged
// and swallowed: metrics never fail a pipeline run.
func (r *Run) Report(gatewayURL string) {
	if gatewayURL == "" {
		return
	}

	err := push.New(gatewayURL, fmt.Sprintf("model_blog_%s", r.job)).
		Gatherer(r.registry).
		Push()
	if err != nil {
		logging.Warn("Failed to push metrics to %s: %v", gatewayURL, err)
		return
	}
	logging.Debug("Pushed run metrics to %s", gatewayURL)
}
