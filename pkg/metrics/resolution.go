package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yusufhadi/smartpos-backend/pkg/enums"
)

// ResolutionMetrics records outcomes of product resolution requests and cart
// mutations.
type ResolutionMetrics struct {
	duration  *prometheus.HistogramVec
	success   prometheus.Counter
	failure   *prometheus.CounterVec
	refused   prometheus.Counter
	cartAdds  prometheus.Counter
	cartDrops prometheus.Counter
}

// NewResolutionMetrics registers the terminal metrics on the provided registerer.
func NewResolutionMetrics(reg prometheus.Registerer) *ResolutionMetrics {
	if reg == nil {
		return &ResolutionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resolution_duration_seconds",
		Help:    "Duration of product resolution calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resolution_success_total",
		Help: "Resolutions that produced a priced line item.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resolution_failure_total",
		Help: "Failed resolutions by failure kind.",
	}, []string{"kind"})
	refused := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resolution_refused_total",
		Help: "Submissions refused because one was already in flight.",
	})
	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Line items appended to carts.",
	})
	cartDrops := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_removed_total",
		Help: "Line items removed from carts.",
	})
	reg.MustRegister(duration, success, failure, refused, cartAdds, cartDrops)
	return &ResolutionMetrics{
		duration:  duration,
		success:   success,
		failure:   failure,
		refused:   refused,
		cartAdds:  cartAdds,
		cartDrops: cartDrops,
	}
}

// ObserveDuration records how long a resolution took for the given outcome.
func (m *ResolutionMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSuccess counts a resolution that reached the cart.
func (m *ResolutionMetrics) IncSuccess() {
	if m == nil || m.success == nil {
		return
	}
	m.success.Inc()
}

// IncFailure counts a failed resolution by kind.
func (m *ResolutionMetrics) IncFailure(kind enums.ResolutionFailure) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(string(kind))).Inc()
}

// IncRefused counts a submission refused while another was outstanding.
func (m *ResolutionMetrics) IncRefused() {
	if m == nil || m.refused == nil {
		return
	}
	m.refused.Inc()
}

// IncCartAdd counts a line item appended to a cart.
func (m *ResolutionMetrics) IncCartAdd() {
	if m == nil || m.cartAdds == nil {
		return
	}
	m.cartAdds.Inc()
}

// IncCartRemove counts a line item removed from a cart.
func (m *ResolutionMetrics) IncCartRemove() {
	if m == nil || m.cartDrops == nil {
		return
	}
	m.cartDrops.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
