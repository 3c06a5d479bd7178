package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	UsersRegistered prometheus.Counter
	OrdersCreated   prometheus.Counter
	CacheHits       *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "velora_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "velora_users_registered_total",
			Help: "Total number of customer registrations.",
		}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "velora_orders_created_total",
			Help: "Total number of orders placed.",
		}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "velora_catalog_cache_requests_total",
			Help: "Catalog cache lookups by outcome (hit/miss).",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

func (m *Metrics) IncrementOrdersCreated() {
	if m != nil {
		m.OrdersCreated.Inc()
	}
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.CacheHits.WithLabelValues(outcome).Inc()
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
