// Package metrics exposes Prometheus metrics for the skill registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook delivery outcomes.
const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Ingestion results.
const (
	ResultImported = "imported"
	ResultSkipped  = "skipped"
	ResultFailed   = "failed"
)

// Manager owns the registry and every collector. A nil or disabled
// Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	webhookDeliveries *prometheus.CounterVec
	syncDuration      prometheus.Histogram
	skillsIngested    *prometheus.CounterVec
	scans             *prometheus.CounterVec
	scanWarnings      *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a Manager on its own registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skill_registry",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.webhookDeliveries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "webhook",
		Name:      "deliveries_total",
		Help:      "Webhook deliveries by event type and outcome",
	}, []string{"event", "outcome"})

	m.syncDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Duration of repository syncs",
		Buckets:   m.histogramBuckets,
	})

	m.skillsIngested = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "skills_total",
		Help:      "Skills handled by sync, by result",
	}, []string{"result"})

	m.scans = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scanner",
		Name:      "scans_total",
		Help:      "Security scans by pass/fail",
	}, []string{"passed"})

	m.scanWarnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scanner",
		Name:      "warnings_total",
		Help:      "Security warnings by category",
	}, []string{"category"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (m *Manager) active() bool {
	return m != nil && m.enabled
}

// Registry returns the registry backing this Manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordWebhook counts one delivery.
func (m *Manager) RecordWebhook(event, outcome string) {
	if !m.active() {
		return
	}
	m.webhookDeliveries.WithLabelValues(event, outcome).Inc()
}

// ObserveSync records one repository sync.
func (m *Manager) ObserveSync(d time.Duration, imported, skipped, failed int) {
	if !m.active() {
		return
	}
	m.syncDuration.Observe(d.Seconds())
	m.skillsIngested.WithLabelValues(ResultImported).Add(float64(imported))
	m.skillsIngested.WithLabelValues(ResultSkipped).Add(float64(skipped))
	m.skillsIngested.WithLabelValues(ResultFailed).Add(float64(failed))
}

// RecordScan counts one scan and its warnings.
func (m *Manager) RecordScan(passed bool, categories []string) {
	if !m.active() {
		return
	}
	m.scans.WithLabelValues(strconv.FormatBool(passed)).Inc()
	for _, c := range categories {
		m.scanWarnings.WithLabelValues(c).Inc()
	}
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(route, method string, status int, d time.Duration) {
	if !m.active() {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
