package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for order submissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
)

// StorefrontMetrics records cart and checkout activity.
type StorefrontMetrics struct {
	cartOps        *prometheus.CounterVec
	orders         *prometheus.CounterVec
	submitDuration prometheus.Histogram
	visitors       prometheus.Gauge
}

// NewStorefrontMetrics registers the storefront collectors on reg. A nil registerer
// yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_submissions_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	submitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_order_submission_seconds",
		Help:    "Time spent waiting on the order acceptance collaborator.",
		Buckets: prometheus.DefBuckets,
	})
	visitors := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_active_visitors",
		Help: "Visitor sessions currently held in memory.",
	})
	reg.MustRegister(cartOps, orders, submitDuration, visitors)
	return &StorefrontMetrics{
		cartOps:        cartOps,
		orders:         orders,
		submitDuration: submitDuration,
		visitors:       visitors,
	}
}

// IncCartOp counts one cart mutation.
func (m *StorefrontMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrder counts one order submission with the given outcome.
func (m *StorefrontMetrics) IncOrder(outcome string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveSubmission records how long the collaborator took.
func (m *StorefrontMetrics) ObserveSubmission(d time.Duration) {
	if m == nil || m.submitDuration == nil {
		return
	}
	m.submitDuration.Observe(d.Seconds())
}

// SetVisitors publishes the number of live visitor sessions.
func (m *StorefrontMetrics) SetVisitors(n int) {
	if m == nil || m.visitors == nil {
		return
	}
	m.visitors.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
