package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors exposed at /metrics.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	UpstreamTimeouts prometheus.Counter
}

// NewMetrics registers the service's metric collectors on the default
// registry. Call it once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "textrefine_http_requests_total",
			Help: "Total HTTP requests by route and status.",
		}, []string{"route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "textrefine_request_duration_seconds",
			Help:    "Wall-clock duration of each request by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		UpstreamTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "textrefine_upstream_timeouts_total",
			Help: "Grammar engine timeouts surfaced to clients as 408.",
		}),
	}
}
