// Package metrics exposes Prometheus counters for the billing flow.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

const namespace = "deliveryportal"

// Gateway order results.
const (
	OrderCreated = "created"
	OrderReused  = "reused"
	OrderFailed  = "failed"
)

type Metrics struct {
	registry      *prometheus.Registry
	gatewayOrders *prometheus.CounterVec
	webhookEvents *prometheus.CounterVec
	settlements   *prometheus.CounterVec
	overdue       prometheus.Counter
}

// New creates metrics bound to a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gatewayOrders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_orders_total",
			Help:      "Create-order requests by result.",
		}, []string{"result"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Verified webhook deliveries by event type and outcome.",
		}, []string{"event", "outcome"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_settlements_total",
			Help:      "Invoices marked paid by settlement path.",
		}, []string{"source"}),
		overdue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_overdue_total",
			Help:      "Invoices moved to overdue by the sweeper.",
		}),
	}
	m.registry.MustRegister(
		m.gatewayOrders,
		m.webhookEvents,
		m.settlements,
		m.overdue,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) GatewayOrder(result string) {
	if m == nil {
		return
	}
	m.gatewayOrders.WithLabelValues(result).Inc()
}

func (m *Metrics) WebhookEvent(event string, outcome model.WebhookOutcome) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(event, string(outcome)).Inc()
}

func (m *Metrics) Settlement(source model.SettlementSource) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) InvoicesOverdue(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.overdue.Add(float64(n))
}
