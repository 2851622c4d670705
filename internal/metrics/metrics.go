// Package metrics holds the fleet's Prometheus metrics on a private
// registry, exposed by internal/health at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every Prometheus metric the collector fleet exports.
// It uses a custom registry to avoid polluting the global default.
type Metrics struct {
	Registry *prometheus.Registry

	// Scheduler / collector run metrics.
	CollectorRunDuration *prometheus.HistogramVec
	CollectorRunTotal    *prometheus.CounterVec
	CollectorErrorTotal  *prometheus.CounterVec
	CollectorStatus      *prometheus.GaugeVec
	CollectorLastRun     *prometheus.GaugeVec

	// Fetch metrics.
	FetchDuration *prometheus.HistogramVec
	FetchRetries  *prometheus.CounterVec

	// Store metrics.
	StorePublishDuration *prometheus.HistogramVec
	StorePublishTotal    *prometheus.CounterVec

	// Streaming-collector metrics (lightning, APRS).
	StreamReconnectsTotal *prometheus.CounterVec
	WorkingSetSize        *prometheus.GaugeVec
}

// New creates a Metrics instance with every metric registered on a
// fresh private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		CollectorRunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kaos_collector_run_duration_seconds",
			Help:    "Duration of a single collector run, success or failure.",
			Buckets: prometheus.DefBuckets,
		}, []string{"collector"}),
		CollectorRunTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaos_collector_run_total",
			Help: "Total number of collector run attempts.",
		}, []string{"collector", "outcome"}),
		CollectorErrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaos_collector_error_total",
			Help: "Total number of collector run errors, by kind.",
		}, []string{"collector", "kind"}),
		CollectorStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kaos_collector_status",
			Help: "Current collector meta status (1 = this status is active).",
		}, []string{"collector", "status"}),
		CollectorLastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kaos_collector_last_run_unixtime",
			Help: "Unix timestamp, in seconds, of the collector's last run.",
		}, []string{"collector"}),

		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kaos_fetch_duration_seconds",
			Help:    "Duration of outbound HTTP fetches.",
			Buckets: prometheus.DefBuckets,
		}, []string{"collector"}),
		FetchRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaos_fetch_retries_total",
			Help: "Total number of fetch retry attempts.",
		}, []string{"collector"}),

		StorePublishDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kaos_store_publish_duration_seconds",
			Help:    "Duration of store publish operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
		StorePublishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaos_store_publish_total",
			Help: "Total number of store publish attempts.",
		}, []string{"backend", "outcome"}),

		StreamReconnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kaos_stream_reconnects_total",
			Help: "Total number of streaming collector reconnect attempts.",
		}, []string{"collector"}),
		WorkingSetSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kaos_working_set_size",
			Help: "Current number of entries held in a streaming collector's working set.",
		}, []string{"collector"}),
	}

	reg.MustRegister(
		m.CollectorRunDuration,
		m.CollectorRunTotal,
		m.CollectorErrorTotal,
		m.CollectorStatus,
		m.CollectorLastRun,
		m.FetchDuration,
		m.FetchRetries,
		m.StorePublishDuration,
		m.StorePublishTotal,
		m.StreamReconnectsTotal,
		m.WorkingSetSize,
	)

	return m
}
