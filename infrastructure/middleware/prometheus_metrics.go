// Package middleware provides cross-cutting concerns for the evaluation
// toolkit.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/andeslab/asreval/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides monitoring of corpus throughput, per-record
// failure modes, and the corpus-level error rate.
type PrometheusMetrics struct {
	recordsProcessed *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	corpusGauges     *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics with the given registerer. Pass prometheus.DefaultRegisterer
// for the global registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		recordsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asreval_records_processed_total",
				Help: "Total number of transcript records processed, by metric and status.",
			},
			[]string{"metric", "status"},
		),
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "asreval_operation_duration_seconds",
				Help:    "Execution time of evaluation operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		corpusGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "asreval_corpus_state",
				Help: "Corpus-level evaluation values, such as the global word error rate.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(metric, status string, value float64) {
	pm.recordsProcessed.WithLabelValues(metric, status).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64) {
	pm.corpusGauges.WithLabelValues(metric).Set(value)
}

// NoopMetrics is a MetricsCollector that discards everything. It stands in
// when a runner is built without monitoring.
type NoopMetrics struct{}

var _ ports.MetricsCollector = NoopMetrics{}

// RecordLatency implements the MetricsCollector interface.
func (NoopMetrics) RecordLatency(string, time.Duration) {}

// RecordCounter implements the MetricsCollector interface.
func (NoopMetrics) RecordCounter(string, string, float64) {}

// RecordGauge implements the MetricsCollector interface.
func (NoopMetrics) RecordGauge(string, float64) {}
