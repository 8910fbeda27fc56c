package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var (
	// Latency buckets in milliseconds.
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	TransactionsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylegate_transactions_total",
			Help: "Total number of transactions processed",
		},
		[]string{"outcome", "category"},
	)

	GateLatency = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylegate_gate_latency_ms",
			Help:    "Per-gate evaluation latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"gate"},
	)

	FingerprintStageTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylegate_fingerprint_stage_total",
			Help: "Fingerprint matches by producing stage",
		},
		[]string{"stage"},
	)

	AuditBufferDepth = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "stylegate_audit_buffer_depth",
			Help: "Number of audit records waiting in the retry buffer",
		},
	)

	AuditBufferEvictions = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "stylegate_audit_buffer_evictions_total",
			Help: "Audit records evicted from a full retry buffer (data loss signal)",
		},
	)

	RegistryStaleRefreshes = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "stylegate_registry_stale_refreshes_total",
			Help: "Registry refresh attempts that failed and kept the stale snapshot",
		},
	)
)

// Registry exposes the private registry for the metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
