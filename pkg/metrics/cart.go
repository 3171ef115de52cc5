package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records remote sync and hydration outcomes for the cart store.
type CartMetrics struct {
	syncTotal    *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec
	syncDropped  prometheus.Counter
	hydration    *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	syncTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_sync_total",
		Help: "Remote cart sync attempts by operation and outcome.",
	}, []string{"op", "outcome"})
	syncDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_sync_duration_seconds",
		Help:    "Duration of remote cart sync calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	syncDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_sync_dropped_total",
		Help: "Pending sync operations superseded by a newer mutation before being sent.",
	})
	hydration := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_hydration_total",
		Help: "Cart hydrations by the source that supplied the state.",
	}, []string{"source"})
	reg.MustRegister(syncTotal, syncDuration, syncDropped, hydration)
	return &CartMetrics{
		syncTotal:    syncTotal,
		syncDuration: syncDuration,
		syncDropped:  syncDropped,
		hydration:    hydration,
	}
}

// ObserveSync records one finished remote call.
func (m *CartMetrics) ObserveSync(op, outcome string, elapsed time.Duration) {
	if m == nil || m.syncTotal == nil {
		return
	}
	op = normalizeLabel(op)
	m.syncTotal.WithLabelValues(op, normalizeLabel(outcome)).Inc()
	m.syncDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// IncSyncDropped counts a coalesced sync operation.
func (m *CartMetrics) IncSyncDropped() {
	if m == nil || m.syncDropped == nil {
		return
	}
	m.syncDropped.Inc()
}

// IncHydration counts a hydration by source.
func (m *CartMetrics) IncHydration(source string) {
	if m == nil || m.hydration == nil {
		return
	}
	m.hydration.WithLabelValues(normalizeLabel(source)).Inc()
}

// OrderMetrics counts order placements on the API.
type OrderMetrics struct {
	placed *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed by payment method.",
	}, []string{"payment_method"})
	reg.MustRegister(placed)
	return &OrderMetrics{placed: placed}
}

// IncPlaced counts a committed order.
func (m *OrderMetrics) IncPlaced(paymentMethod string) {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
