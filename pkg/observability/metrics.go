package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains Prometheus collectors for validator calls.
type Metrics struct {
	registry *prometheus.Registry

	validations *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewMetrics creates collectors on a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conform_validations_total",
				Help: "Total number of validator calls",
			},
			[]string{"op", "result"},
		),

		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conform_validation_failures_total",
				Help: "Total number of failed validator calls by error kind",
			},
			[]string{"op", "kind"},
		),
	}
}

// Record counts one event.
func (m *Metrics) Record(evt *domain.ValidationEvent) {
	result := "ok"
	if evt.Failed() {
		result = "error"
		m.failures.WithLabelValues(string(evt.Op), domain.KindName(evt.Err)).Inc()
	}
	m.validations.WithLabelValues(string(evt.Op), result).Inc()
}

// Hooks returns validation hooks that feed the collectors.
func (m *Metrics) Hooks() domain.ValidationHooks {
	return domain.ValidationHooks{
		OnValidate: func(_ context.Context, evt *domain.ValidationEvent) {
			m.Record(evt)
		},
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
