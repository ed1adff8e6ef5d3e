// Package monitoring provides Prometheus metrics for the pantry service.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Reconciliation metrics
	itemsMergedTotal          prometheus.Counter
	itemsCreatedTotal         prometheus.Counter
	itemsDepletedTotal        prometheus.Counter
	usageSkippedTotal         prometheus.Counter
	incompatibleUnitsTotal    prometheus.Counter
	proteinNoticesTotal       prometheus.Counter
	reconcileBatchesTotal     *prometheus.CounterVec
	reconcileBatchSizeSummary prometheus.Histogram
}

// NewMetricsCollector creates a new metrics collector registered on the
// default registry.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		itemsMergedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pantry_items_merged_total",
			Help: "Incoming items folded into existing stock",
		}),
		itemsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pantry_items_created_total",
			Help: "Incoming items promoted to new stock entries",
		}),
		itemsDepletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pantry_items_depleted_total",
			Help: "Stock items removed after being drained by cooking",
		}),
		usageSkippedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pantry_usage_skipped_total",
			Help: "Usage records with no matching stock item",
		}),
		incompatibleUnitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pantry_incompatible_units_total",
			Help: "Consumption attempts skipped due to irreconcilable unit classes",
		}),
		proteinNoticesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pantry_protein_notices_total",
			Help: "Reconcile batches that raised a protein-added notice",
		}),
		reconcileBatchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_reconcile_batches_total",
				Help: "Reconcile batches processed, by kind",
			},
			[]string{"kind"},
		),
		reconcileBatchSizeSummary: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pantry_reconcile_batch_size",
			Help:    "Number of incoming items per reconcile batch",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
}

// RecordHTTPRequest records an HTTP request metric
func (m *MetricsCollector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordReconcile records the outcome of a merge batch
func (m *MetricsCollector) RecordReconcile(kind string, batchSize, created, merged int, proteinNotice bool) {
	m.reconcileBatchesTotal.WithLabelValues(kind).Inc()
	m.reconcileBatchSizeSummary.Observe(float64(batchSize))
	m.itemsCreatedTotal.Add(float64(created))
	m.itemsMergedTotal.Add(float64(merged))
	if proteinNotice {
		m.proteinNoticesTotal.Inc()
	}
}

// RecordConsumption records the outcome of applying usage records
func (m *MetricsCollector) RecordConsumption(removed, skipped, incompatible int) {
	m.itemsDepletedTotal.Add(float64(removed))
	m.usageSkippedTotal.Add(float64(skipped))
	m.incompatibleUnitsTotal.Add(float64(incompatible))
}
