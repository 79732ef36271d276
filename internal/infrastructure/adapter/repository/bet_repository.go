package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	persistence "github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/model"
)

// BetRepository implements the BetRepository port using GORM
type BetRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBetRepository creates a new BetRepository instance
func NewBetRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *BetRepository {
	return &BetRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func betModelToEntity(m *model.Bet) *entity.Bet {
	return &entity.Bet{
		ID:             m.ID,
		BetID:          m.BetID,
		AccountID:      m.AccountID,
		Variant:        entity.GameVariant(m.Variant),
		SelectionType:  entity.SelectionType(m.SelectionType),
		SelectionValue: m.SelectionValue,
		StakeCents:     m.StakeCents,
		PayoutCents:    m.PayoutCents,
		Status:         entity.BetStatus(m.Status),
		RoundID:        m.RoundID,
		CreatedAt:      m.CreatedAt,
		ResolvedAt:     m.ResolvedAt,
	}
}

// Create saves a new bet record
func (r *BetRepository) Create(ctx context.Context, bet *entity.Bet) error {
	m := model.Bet{
		BetID:          bet.BetID,
		AccountID:      bet.AccountID,
		Variant:        string(bet.Variant),
		SelectionType:  string(bet.SelectionType),
		SelectionValue: bet.SelectionValue,
		StakeCents:     bet.StakeCents,
		PayoutCents:    bet.PayoutCents,
		Status:         string(bet.Status),
		RoundID:        bet.RoundID,
		CreatedAt:      bet.CreatedAt,
		ResolvedAt:     bet.ResolvedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to create bet record", map[string]any{
			"bet_id":     bet.BetID,
			"account_id": bet.AccountID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	// The per-account bet counter moves with the bet row, inside the same
	// placement transaction. Balance adjustments alone never touch it.
	result = r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", bet.AccountID).
		UpdateColumn("bet_count", gorm.Expr("bet_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	bet.ID = m.ID
	return nil
}

// ResolvePending flips a pending bet to won/lost with its payout. The
// conditional WHERE keeps resolution idempotent: a bet that already left
// pending is reported as not flipped, never re-credited.
func (r *BetRepository) ResolvePending(ctx context.Context, betID string, status entity.BetStatus, payoutCents int64) (bool, error) {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Bet{}).
		Where("bet_id = ? AND status = ?", betID, string(entity.BetPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"payout_cents": payoutCents,
			"resolved_at":  now,
		})

	if result.Error != nil {
		r.logger.Error("Failed to resolve bet", map[string]any{
			"bet_id": betID,
			"error":  result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return result.RowsAffected > 0, nil
}

// ListPendingByRound returns every unresolved bet tied to a round
func (r *BetRepository) ListPendingByRound(ctx context.Context, roundID string) ([]*entity.Bet, error) {
	var ms []model.Bet
	result := r.db.WithContext(ctx).
		Where("round_id = ? AND status = ?", roundID, string(entity.BetPending)).
		Order("id asc").
		Find(&ms)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	bets := make([]*entity.Bet, 0, len(ms))
	for i := range ms {
		bets = append(bets, betModelToEntity(&ms[i]))
	}
	return bets, nil
}

// TotalsByRound aggregates pending stakes per selection value for a round
func (r *BetRepository) TotalsByRound(ctx context.Context, roundID string) ([]persistence.ColorTotal, error) {
	var rows []struct {
		SelectionValue string
		BetCount       int64
		AmountCents    int64
	}

	result := r.db.WithContext(ctx).Model(&model.Bet{}).
		Select("selection_value, COUNT(*) AS bet_count, COALESCE(SUM(stake_cents), 0) AS amount_cents").
		Where("round_id = ?", roundID).
		Group("selection_value").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	totals := make([]persistence.ColorTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, persistence.ColorTotal{
			Color:       row.SelectionValue,
			BetCount:    row.BetCount,
			AmountCents: row.AmountCents,
		})
	}
	return totals, nil
}

// ListByAccount returns the most recent bets of an account, newest first
func (r *BetRepository) ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.Bet, error) {
	var ms []model.Bet
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Limit(limit).
		Find(&ms)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	bets := make([]*entity.Bet, 0, len(ms))
	for i := range ms {
		bets = append(bets, betModelToEntity(&ms[i]))
	}
	return bets, nil
}
