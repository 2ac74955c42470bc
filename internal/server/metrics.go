package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigcalc/internal/calc"
)

// Metrics holds the Prometheus collectors of the HTTP API. Each instance
// owns a private registry so that several servers (and tests) can coexist
// in one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal     prometheus.Counter
	responsesTotal    *prometheus.CounterVec
	activeRequests    prometheus.Gauge
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// Metrics receives one observation per evaluation from the calculators.
var _ calc.Observer = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bigcalc_requests_total",
			Help: "Total number of HTTP requests received.",
		}),
		responsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_responses_total",
			Help: "HTTP responses by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "Evaluations by operation, digit width and outcome.",
		}, []string{"op", "width", "status"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_operation_duration_seconds",
			Help:    "Evaluation latency by operation and digit width.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "width"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.responsesTotal,
		m.activeRequests,
		m.operationsTotal,
		m.operationDuration,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests counts a new request.
func (m *Metrics) IncrementActiveRequests() {
	m.requestsTotal.Inc()
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// RecordResponse counts a response by path and status code.
func (m *Metrics) RecordResponse(path string, code int) {
	m.responsesTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// Observe implements calc.Observer.
func (m *Metrics) Observe(o calc.Observation) {
	status := "ok"
	if o.Err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(string(o.Op), o.Calculator, status).Inc()
	m.operationDuration.WithLabelValues(string(o.Op), o.Calculator).Observe(o.Duration.Seconds())
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
