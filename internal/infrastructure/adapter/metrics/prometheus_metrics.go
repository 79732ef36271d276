package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luckyrupee/wager-engine/internal/domain/port/core"
)

// PrometheusMetrics implements the Metrics port with Prometheus collectors
type PrometheusMetrics struct {
	betsPlaced       *prometheus.CounterVec
	betsSettled      *prometheus.CounterVec
	roundOpen        *prometheus.GaugeVec
	paymentsResolved *prometheus.CounterVec
}

// NewPrometheusMetrics creates and registers the engine's collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		betsPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "wager_bets_placed_total", Help: "accepted bets by variant"},
			[]string{"variant"},
		),
		betsSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "wager_bets_settled_total", Help: "resolved bets by terminal status"},
			[]string{"status"},
		),
		roundOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "wager_round_open", Help: "1 when the variant has a round accepting bets"},
			[]string{"variant"},
		),
		paymentsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "wager_payments_resolved_total", Help: "payment decisions by kind and decision"},
			[]string{"kind", "decision"},
		),
	}
	prometheus.MustRegister(m.betsPlaced, m.betsSettled, m.roundOpen, m.paymentsResolved)
	return m
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

// IncBetPlaced counts an accepted bet by variant
func (m *PrometheusMetrics) IncBetPlaced(variant string) {
	m.betsPlaced.WithLabelValues(variant).Inc()
}

// IncBetSettled counts a resolved bet by terminal status
func (m *PrometheusMetrics) IncBetSettled(status string) {
	m.betsSettled.WithLabelValues(status).Inc()
}

// SetRoundOpen flags whether a variant currently has an open round
func (m *PrometheusMetrics) SetRoundOpen(variant string, open bool) {
	v := 0.0
	if open {
		v = 1.0
	}
	m.roundOpen.WithLabelValues(variant).Set(v)
}

// IncPaymentResolved counts payment decisions by kind and decision
func (m *PrometheusMetrics) IncPaymentResolved(kind, decision string) {
	m.paymentsResolved.WithLabelValues(kind, decision).Inc()
}
