package telemetry

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promNamespace = "tokenestate"

// HTTPDurationBuckets are request latency boundaries in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// PrometheusMetrics is the scrape registry served on /metrics
type PrometheusMetrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	jobRuns      *prometheus.CounterVec
	jobAffected  *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a registry with Go runtime and process
// collectors plus the HTTP and scheduler series.
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: promNamespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: promNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   HTTPDurationBuckets,
		}, []string{"method", "route"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by outcome.",
		}, []string{"job", "outcome"}),
		jobAffected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "scheduler",
			Name:      "job_affected_total",
			Help:      "Records changed by scheduled jobs.",
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: promNamespace,
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled job runs.",
			Buckets:   JobDurationBuckets,
		}, []string{"job"}),
	}
	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.jobRuns,
		m.jobAffected,
		m.jobDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestStarted marks a request in flight and returns the func that ends it
func (m *PrometheusMetrics) RequestStarted() func() {
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

// ObserveHTTP records a finished request. route must be the route
// template, not the raw path, to keep cardinality bounded.
func (m *PrometheusMetrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveJob implements the scheduler observer
func (m *PrometheusMetrics) ObserveJob(name string, affected int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.jobRuns.WithLabelValues(name, outcome).Inc()
	m.jobAffected.WithLabelValues(name).Add(float64(affected))
	m.jobDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// RegisterDB exports connection pool statistics for db
func (m *PrometheusMetrics) RegisterDB(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// RegisterGauge exports a value read at scrape time
func (m *PrometheusMetrics) RegisterGauge(subsystem, name, help string, fn func() float64) error {
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, fn))
}

// RegisterCounter exports a monotonically increasing value read at scrape time
func (m *PrometheusMetrics) RegisterCounter(subsystem, name, help string, fn func() float64) error {
	return m.registry.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, fn))
}

// MultiObserver fans a job observation out to several observers
type MultiObserver []interface {
	ObserveJob(name string, affected int, duration time.Duration, err error)
}

// ObserveJob implements the scheduler observer
func (o MultiObserver) ObserveJob(name string, affected int, duration time.Duration, err error) {
	for _, obs := range o {
		if obs != nil {
			obs.ObserveJob(name, affected, duration, err)
		}
	}
}
