// Package metrics exposes prometheus counters for ledger calls and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rohits-web03/chainvault/internal/ledger"
)

const namespace = "chainvault"

type Metrics struct {
	registry     *prometheus.Registry
	ledgerCalls  *prometheus.CounterVec
	ledgerTime   *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ledgerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "calls_total",
			Help:      "Ledger calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		ledgerTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "call_seconds",
			Help:      "Ledger call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method and status.",
		}, []string{"method", "status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.ledgerCalls,
		m.ledgerTime,
		m.httpRequests,
	)
	return m
}

var _ ledger.Observer = (*Metrics)(nil)

func (m *Metrics) ObserveLedgerCall(op string, kind ledger.Kind, elapsed time.Duration) {
	outcome := "ok"
	if kind != ledger.KindNone {
		outcome = kind.String()
	}
	m.ledgerCalls.WithLabelValues(op, outcome).Inc()
	m.ledgerTime.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method string, status int) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
