// Package metrics exposes the console's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Deliveries      *prometheus.CounterVec
	Transitions     *prometheus.CounterVec
	QuotesSet       prometheus.Counter
	SchemaErrors    prometheus.Counter
	CheckoutsFailed prometheus.Counter
	SSEClients      prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staging_console",
			Name:      "deliveries_total",
			Help:      "Delivered result artifacts by stage and outcome.",
		}, []string{"stage", "outcome"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staging_console",
			Name:      "status_transitions_total",
			Help:      "Submission status transitions by target status.",
		}, []string{"to"}),
		QuotesSet: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "staging_console",
			Name:      "quotes_set_total",
			Help:      "Quotes persisted.",
		}),
		SchemaErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "staging_console",
			Name:      "schema_errors_total",
			Help:      "Writes rejected because a column is missing.",
		}),
		CheckoutsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "staging_console",
			Name:      "checkout_failures_total",
			Help:      "Checkout triggers that failed after retries.",
		}),
		SSEClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "staging_console",
			Name:      "sse_clients",
			Help:      "Connected event stream clients.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Deliveries,
		m.Transitions,
		m.QuotesSet,
		m.SchemaErrors,
		m.CheckoutsFailed,
		m.SSEClients,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
