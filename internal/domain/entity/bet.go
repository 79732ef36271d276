package entity

import (
	"fmt"
	"time"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
)

// GameVariant identifies the game a bet was placed against
type GameVariant string

// Game variants
const (
	VariantColorCash GameVariant = "colorcash"
	VariantOddEven   GameVariant = "oddeven"
	VariantSpinWin   GameVariant = "spinwin"
	VariantFourColor GameVariant = "fourcolor"
)

// SelectionType identifies what a ColorCash bet targets
type SelectionType string

// Selection types
const (
	SelectColor  SelectionType = "color"
	SelectNumber SelectionType = "number"
	SelectTrio   SelectionType = "trio"
	SelectSize   SelectionType = "size"
	SelectParity SelectionType = "parity"
)

// BetStatus defines the resolution state of a bet
type BetStatus string

// Bet statuses
const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// Bet represents a single wager. Instant-game bets are created already
// resolved; live bets are created pending and resolved by the scheduler.
type Bet struct {
	ID             uint64      // Database identifier
	BetID          string      // External UUID for the bet
	AccountID      uint64      // Account the stake was debited from
	Variant        GameVariant // Game variant
	SelectionType  SelectionType
	SelectionValue string    // e.g. "green", "7", "2", "big", "odd", "red"
	StakeCents     int64     // Stake in cents, debited at placement
	PayoutCents    int64     // Payout in cents; 0 on loss, never null
	Status         BetStatus // pending/won/lost
	RoundID        string    // Round the bet belongs to; empty for instant bets
	CreatedAt      time.Time // When the bet was placed
	ResolvedAt     *time.Time
}

// NewBet creates a pending bet with basic validation. The stake amount is
// given as a decimal string exactly as received from the caller.
func NewBet(
	betID string,
	accountID uint64,
	variant GameVariant,
	selType SelectionType,
	selValue string,
	stake string,
	roundID string,
	timeProvider coreport.TimeProvider,
) (*Bet, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if betID == "" {
		return nil, fmt.Errorf("%w: bet ID cannot be empty", errs.ErrInvalidRequest)
	}
	if !isValidVariant(variant) {
		return nil, fmt.Errorf("%w: unknown variant %s", errs.ErrInvalidSelection, variant)
	}

	stakeCents, err := ParsePositiveAmount(stake)
	if err != nil {
		return nil, err
	}

	return &Bet{
		BetID:          betID,
		AccountID:      accountID,
		Variant:        variant,
		SelectionType:  selType,
		SelectionValue: selValue,
		StakeCents:     stakeCents,
		PayoutCents:    0,
		Status:         BetPending,
		RoundID:        roundID,
		CreatedAt:      timeProvider.Now(),
	}, nil
}

// Resolve marks the bet won or lost exactly once. A second call is a no-op
// so settlement stays idempotent per bet.
func (b *Bet) Resolve(won bool, payoutCents int64, timeProvider coreport.TimeProvider) bool {
	if b.Status != BetPending {
		return false
	}

	now := timeProvider.Now()
	b.ResolvedAt = &now
	if won {
		b.Status = BetWon
		b.PayoutCents = payoutCents
	} else {
		b.Status = BetLost
		b.PayoutCents = 0
	}
	return true
}

// IsResolved reports whether the bet has left the pending state
func (b *Bet) IsResolved() bool {
	return b.Status != BetPending
}

// Stake returns the stake as a decimal string
func (b *Bet) Stake() string {
	return FormatCents(b.StakeCents)
}

// Payout returns the payout as a decimal string
func (b *Bet) Payout() string {
	return FormatCents(b.PayoutCents)
}

func isValidVariant(v GameVariant) bool {
	switch v {
	case VariantColorCash, VariantOddEven, VariantSpinWin, VariantFourColor:
		return true
	}
	return false
}
