// internal/monitoring/metrics.go

// Package monitoring provides Prometheus metrics for the aggregation
// pipeline and the snapshot server.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics manages the Prometheus collectors for StageScrapexter. All record
// methods are nil-safe so the pipeline can run without metrics wired.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sourcesSkipped  prometheus.Counter
	detailFailures  prometheus.Counter
	productions     prometheus.Gauge
	runDuration     prometheus.Histogram
	outputWrites    *prometheus.CounterVec
}

// NewMetrics creates a metrics manager backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagescrapexter",
			Name:      "requests_total",
			Help:      "HTTP fetches by pipeline phase and outcome",
		}, []string{"phase", "outcome"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stagescrapexter",
			Name:      "request_duration_seconds",
			Help:      "HTTP fetch duration by pipeline phase",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),

		sourcesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "stagescrapexter",
			Name:      "sources_skipped_total",
			Help:      "Listing sources skipped after transport failure",
		}),

		detailFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "stagescrapexter",
			Name:      "detail_failures_total",
			Help:      "Detail fetches that left a production with stub-only data",
		}),

		productions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "stagescrapexter",
			Name:      "productions_aggregated",
			Help:      "Distinct productions in the last snapshot",
		}),

		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stagescrapexter",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full aggregation run",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),

		outputWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagescrapexter",
			Name:      "output_writes_total",
			Help:      "Snapshot writes by target and outcome",
		}, []string{"target", "outcome"}),
	}
}

// ObserveRequest records one fetch attempt's outcome and duration.
func (m *Metrics) ObserveRequest(phase string, err error, duration time.Duration) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.requestsTotal.WithLabelValues(phase, outcome).Inc()
	m.requestDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// SourceSkipped records a listing source dropped after transport failure.
func (m *Metrics) SourceSkipped() {
	if m == nil {
		return
	}
	m.sourcesSkipped.Inc()
}

// DetailFailed records a production left with stub-only data.
func (m *Metrics) DetailFailed() {
	if m == nil {
		return
	}
	m.detailFailures.Inc()
}

// SetProductions records the size of the finished snapshot.
func (m *Metrics) SetProductions(count int) {
	if m == nil {
		return
	}
	m.productions.Set(float64(count))
}

// ObserveRun records the wall time of a full run.
func (m *Metrics) ObserveRun(duration time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())
}

// ObserveOutput records one write to an output target.
func (m *Metrics) ObserveOutput(target string, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.outputWrites.WithLabelValues(target, outcome).Inc()
}

// Handler exposes the metrics registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying registry for tests.
func (m *Metrics) Gather() prometheus.Gatherer {
	return m.registry
}
