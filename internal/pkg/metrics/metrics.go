package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess   = "success"
	OutcomeMalformed = "malformed"
	OutcomeFailure   = "failure"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry       *prometheus.Registry
	upstreamCalls  *prometheus.CounterVec
	upstreamTiming *prometheus.HistogramVec
	sessions       prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eduease",
			Name:      "upstream_calls_total",
			Help:      "Language model calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamTiming: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eduease",
			Name:      "upstream_call_seconds",
			Help:      "Language model call latency.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"endpoint"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eduease",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.upstreamCalls, m.upstreamTiming, m.sessions)
	return m
}

// ObserveUpstream records one call. A nil receiver is a no-op.
func (m *Metrics) ObserveUpstream(endpoint, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamTiming.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
