package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics lives on its own registry so several servers can coexist in one
// process (tests do).
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ledgerCalls     *prometheus.CounterVec
	ledgerDuration  *prometheus.HistogramVec
	rateLimited     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "electiongw",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "electiongw",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		ledgerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "electiongw",
			Name:      "ledger_calls_total",
			Help:      "Ledger round trips by kind, contract method and outcome.",
		}, []string{"op", "method", "outcome"}),
		ledgerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "electiongw",
			Name:      "ledger_call_duration_seconds",
			Help:      "Ledger round trip latency by kind.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"op"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "electiongw",
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the per client rate limit.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.requestDuration, m.ledgerCalls, m.ledgerDuration, m.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveLedger has the shape of ledger.Observer.
func (m *Metrics) ObserveLedger(op, method string, err error, took time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ledgerCalls.WithLabelValues(op, method, outcome).Inc()
	m.ledgerDuration.WithLabelValues(op).Observe(took.Seconds())
}

func (m *Metrics) observeRequest(method, route string, code int, took time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(took.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
