package persistence

import (
	"context"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// ColorTotal aggregates stakes per 4-Color selection for the operator view
type ColorTotal struct {
	Color       string
	BetCount    int64
	AmountCents int64
}

// BetRepository is the append-once store of placed bets. Each bet is written
// at placement and updated at most once at resolution. Bets are indexed by
// round ID so live settlement can aggregate across accounts.
type BetRepository interface {
	// Create saves a new bet record
	Create(ctx context.Context, bet *entity.Bet) error

	// ResolvePending marks a pending bet won or lost with its payout.
	// Returns false without error when the bet was already resolved, which
	// keeps settlement idempotent per bet.
	ResolvePending(ctx context.Context, betID string, status entity.BetStatus, payoutCents int64) (bool, error)

	// ListPendingByRound returns every unresolved bet tied to a round,
	// across all accounts
	ListPendingByRound(ctx context.Context, roundID string) ([]*entity.Bet, error)

	// TotalsByRound returns per-selection bet counts and stake sums for a
	// round (the 4-Color operator's running totals)
	TotalsByRound(ctx context.Context, roundID string) ([]ColorTotal, error)

	// ListByAccount returns the most recent bets of an account, newest first
	ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.Bet, error)
}
