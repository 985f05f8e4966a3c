package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the construction instrumentation for one handler.
// Each handler owns a private registry so that tests can spin up multiple
// handlers without collector collisions.
type metrics struct {
	registry *prometheus.Registry
	builds   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picket_builds_total",
				Help: "Record constructions by schema, shape and outcome.",
			},
			[]string{"schema", "shape", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "picket_build_duration_seconds",
				Help:    "Record construction duration by schema.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"schema"},
		),
	}
	m.registry.MustRegister(m.builds, m.duration)
	return m
}

func (m *metrics) observe(schema, shape, outcome string, seconds float64) {
	m.builds.WithLabelValues(schema, shape, outcome).Inc()
	m.duration.WithLabelValues(schema).Observe(seconds)
}
