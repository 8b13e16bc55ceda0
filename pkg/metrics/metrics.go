package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the push demo collectors on a private registry.
type Metrics struct {
	registry  *prometheus.Registry
	tokens    *prometheus.CounterVec
	received  prometheus.Counter
	responses prometheus.Counter
	sends     *prometheus.CounterVec
}

// New returns a Metrics collector with every series registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_demo_token_acquisitions_total",
			Help: "Push token acquisitions by outcome",
		}, []string{"outcome"}),
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "push_demo_notifications_received_total",
			Help: "Notifications received while in the foreground",
		}),
		responses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "push_demo_notification_responses_total",
			Help: "User interactions with notifications",
		}),
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_demo_test_sends_total",
			Help: "Test notifications handed to the push relay by result",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.tokens, m.received, m.responses, m.sends)
	return m
}

func (m *Metrics) IncTokenOutcome(outcome string) { m.tokens.WithLabelValues(outcome).Inc() }
func (m *Metrics) IncReceived()                   { m.received.Inc() }
func (m *Metrics) IncResponse()                   { m.responses.Inc() }
func (m *Metrics) IncSend(result string)          { m.sends.WithLabelValues(result).Inc() }

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
