// Package metrics owns the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and records collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPActiveConnections prometheus.Gauge

	Departments    prometheus.Gauge
	Patients       prometheus.Gauge
	Staff          prometheus.Gauge
	MutationsTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		}),
		Departments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hospital_departments",
			Help: "Number of departments currently registered",
		}),
		Patients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hospital_patients",
			Help: "Number of patients across all departments",
		}),
		Staff: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hospital_staff",
			Help: "Number of staff members across all departments",
		}),
		MutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hospital_mutations_total",
				Help: "Records mutations by operation and result",
			},
			[]string{"operation", "result"}, // result: "success", "duplicate", "not_found", "error"
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPActiveConnections,
		m.Departments,
		m.Patients,
		m.Staff,
		m.MutationsTotal,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one finished request.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// SetTotals publishes the current department, patient and staff counts.
func (m *Metrics) SetTotals(departments, patients, staff int) {
	m.Departments.Set(float64(departments))
	m.Patients.Set(float64(patients))
	m.Staff.Set(float64(staff))
}

// RecordMutation counts a records mutation outcome.
func (m *Metrics) RecordMutation(operation, result string) {
	m.MutationsTotal.WithLabelValues(operation, result).Inc()
}
