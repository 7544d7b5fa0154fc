// Package metrics defines the Prometheus collectors for a ranking run and
// exposes an HTTP handler for scraping while the run is in progress.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors updated by the scoring pipeline.
type Metrics struct {
	AbstractsProcessed *prometheus.CounterVec
	AbstractScore      prometheus.Histogram
	ProcessingDuration prometheus.Histogram
	ActiveWorkers      prometheus.Gauge
	QueueDepth         prometheus.Gauge
	ResultsReported    prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry, so
// several pipelines in one process (tests, mostly) do not collide.
func New() *Metrics {
	m := &Metrics{
		AbstractsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "abstracts_processed_total",
				Help: "Abstracts scored, by load status (ok, load_failed).",
			},
			[]string{"status"},
		),
		AbstractScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "abstract_score",
				Help:    "Distribution of Jaccard similarity scores.",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		ProcessingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "abstract_processing_seconds",
				Help:    "Time to load, tokenize and score one abstract.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		ActiveWorkers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scoring_workers_active",
				Help: "Number of scoring workers currently running.",
			},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scoring_queue_depth",
				Help: "Abstract identifiers waiting to be dequeued.",
			},
		),
		ResultsReported: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "results_reported",
				Help: "Number of result blocks written to the report.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.AbstractsProcessed,
		m.AbstractScore,
		m.ProcessingDuration,
		m.ActiveWorkers,
		m.QueueDepth,
		m.ResultsReported,
	)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus scrape HTTP handler for m.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
