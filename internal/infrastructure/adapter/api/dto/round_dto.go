package dto

import (
	"github.com/luckyrupee/wager-engine/internal/domain/usecase/live"
)

// StartRoundResponse acknowledges a newly opened operator round
type StartRoundResponse struct {
	RoundID string `json:"roundId"`
}

// EndRoundRequest carries the operator's winning color
type EndRoundRequest struct {
	WinningColor string `json:"winningColor" binding:"required,oneof=red green blue yellow"`
}

// RoundTotalsResponse reports per-color stakes for the open round
type RoundTotalsResponse struct {
	RoundID string                `json:"roundId"`
	Totals  []live.ColorTotalView `json:"totals"`
}
