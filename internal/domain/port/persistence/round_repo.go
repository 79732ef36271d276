package persistence

import (
	"context"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// RoundRepository stores live-round state. At most one round per variant is
// non-terminal at any time; rounds are retired, never deleted.
type RoundRepository interface {
	// Create persists a newly opened round
	Create(ctx context.Context, round *entity.Round) error

	// Update persists a round state transition
	Update(ctx context.Context, round *entity.Round) error

	// GetByID retrieves a round by ID
	//
	// Possible errors:
	// - ErrRoundNotFound
	GetByID(ctx context.Context, id string) (*entity.Round, error)

	// GetOpen returns the round currently accepting bets for a variant.
	// When called inside a unit-of-work transaction the round row is
	// locked for that transaction, serializing bet placement against a
	// concurrent settlement of the same round.
	//
	// Possible errors:
	// - ErrRoundNotFound: if no round is open
	GetOpen(ctx context.Context, variant entity.GameVariant) (*entity.Round, error)

	// GetLatest returns the most recent round for a variant regardless of
	// state, so a just-finished round stays queryable until replaced
	GetLatest(ctx context.Context, variant entity.GameVariant) (*entity.Round, error)

	// GetUnfinished returns the most recent non-terminal round for a
	// variant, used by the scheduler to find what needs resolving
	GetUnfinished(ctx context.Context, variant entity.GameVariant) (*entity.Round, error)
}
