// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Guard and domain metrics
	AuthFailuresTotal     *prometheus.CounterVec
	InventoryLookupsTotal *prometheus.CounterVec
	RegistrationsTotal    *prometheus.CounterVec
	EventPublishFailures  prometheus.Counter

	// Database metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
}

// Auth failure reasons.
const (
	ReasonMissingToken = "missing_token"
	ReasonInvalidToken = "invalid_token"
	ReasonForbidden    = "forbidden"
	ReasonBadLogin     = "bad_login"
)

// Inventory lookup results.
const (
	LookupFound        = "found"
	LookupUnregistered = "unregistered"
)

// New creates and registers all metrics on registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_auth_failures_total",
				Help: "Requests rejected by the auth guard or login",
			},
			[]string{"reason"},
		),
		InventoryLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_lookups_total",
				Help: "Inventory lookups by barcode",
			},
			[]string{"result"},
		),
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_registrations_total",
				Help: "Users registered, by role",
			},
			[]string{"role"},
		),
		EventPublishFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_event_publish_failures_total",
				Help: "Domain events that could not be published",
			},
		),
		DBConnectionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_db_connections_open",
			Help: "Open database connections",
		}),
		DBConnectionsInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_db_connections_in_use",
			Help: "Database connections currently reserved",
		}),
		DBConnectionsIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_db_connections_idle",
			Help: "Idle database connections",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthFailuresTotal,
		m.InventoryLookupsTotal,
		m.RegistrationsTotal,
		m.EventPublishFailures,
		m.DBConnectionsOpen,
		m.DBConnectionsInUse,
		m.DBConnectionsIdle,
	)
	return m
}

// AuthFailure counts a rejected request. Safe on a nil receiver.
func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.WithLabelValues(reason).Inc()
}

// InventoryLookup counts a lookup outcome. Safe on a nil receiver.
func (m *Metrics) InventoryLookup(result string) {
	if m == nil {
		return
	}
	m.InventoryLookupsTotal.WithLabelValues(result).Inc()
}

// Registration counts a created user. Safe on a nil receiver.
func (m *Metrics) Registration(role string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(role).Inc()
}

// PublishFailure counts a dropped event. Safe on a nil receiver.
func (m *Metrics) PublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}

// RecordDBStats copies pool statistics into the connection gauges.
func (m *Metrics) RecordDBStats(s sql.DBStats) {
	if m == nil {
		return
	}
	m.DBConnectionsOpen.Set(float64(s.OpenConnections))
	m.DBConnectionsInUse.Set(float64(s.InUse))
	m.DBConnectionsIdle.Set(float64(s.Idle))
}

// Handler serves the exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
