package core

// Metrics abstracts the counters the engine emits. The production adapter
// is Prometheus-backed; tests use a no-op.
type Metrics interface {
	// IncBetPlaced counts an accepted bet by variant
	IncBetPlaced(variant string)
	// IncBetSettled counts a resolved bet by terminal status (won/lost)
	IncBetSettled(status string)
	// SetRoundOpen flags whether a variant currently has an open round
	SetRoundOpen(variant string, open bool)
	// IncPaymentResolved counts payment decisions by kind and decision
	IncPaymentResolved(kind, decision string)
}

// NoopMetrics is a Metrics implementation that discards everything
type NoopMetrics struct{}

func (NoopMetrics) IncBetPlaced(string)               {}
func (NoopMetrics) IncBetSettled(string)              {}
func (NoopMetrics) SetRoundOpen(string, bool)         {}
func (NoopMetrics) IncPaymentResolved(string, string) {}
