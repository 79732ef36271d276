package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/model"
)

// nonTerminalStatuses are the round states that still need scheduler action
var nonTerminalStatuses = []string{
	string(entity.RoundBetting),
	string(entity.RoundSpinning),
}

// RoundRepository implements the RoundRepository port using GORM
type RoundRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRoundRepository creates a new RoundRepository instance
func NewRoundRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *RoundRepository {
	return &RoundRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func roundModelToEntity(m *model.Round) *entity.Round {
	return &entity.Round{
		ID:           m.ID,
		Variant:      entity.GameVariant(m.Variant),
		Status:       entity.RoundStatus(m.Status),
		StartTime:    m.StartTime,
		BetCloseTime: m.BetCloseTime,
		EndTime:      m.EndTime,
		Outcome:      m.Outcome,
		ResolvedAt:   m.ResolvedAt,
	}
}

func (r *RoundRepository) wrapError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrRoundNotFound
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a newly opened round
func (r *RoundRepository) Create(ctx context.Context, round *entity.Round) error {
	now := r.timeProvider.Now()
	m := model.Round{
		ID:           round.ID,
		Variant:      string(round.Variant),
		Status:       string(round.Status),
		StartTime:    round.StartTime,
		BetCloseTime: round.BetCloseTime,
		EndTime:      round.EndTime,
		Outcome:      round.Outcome,
		ResolvedAt:   round.ResolvedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.wrapError("creating round", result.Error)
	}
	return nil
}

// Update persists a round state transition
func (r *RoundRepository) Update(ctx context.Context, round *entity.Round) error {
	result := r.db.WithContext(ctx).Model(&model.Round{}).
		Where("id = ?", round.ID).
		Updates(map[string]interface{}{
			"status":      string(round.Status),
			"outcome":     round.Outcome,
			"resolved_at": round.ResolvedAt,
			"updated_at":  r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.wrapError("updating round", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrRoundNotFound
	}
	return nil
}

// GetByID retrieves a round by ID
func (r *RoundRepository) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	var m model.Round
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		return nil, r.wrapError("getting round", result.Error)
	}
	return roundModelToEntity(&m), nil
}

// GetOpen returns the round currently accepting bets for a variant, holding
// its row FOR UPDATE for the rest of the surrounding transaction. Settlement
// updates the round row before listing pending bets, so a placement that
// read the round first blocks settlement until its bet is committed, and a
// placement that arrives second waits out settlement and finds no open round.
func (r *RoundRepository) GetOpen(ctx context.Context, variant entity.GameVariant) (*entity.Round, error) {
	var m model.Round
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("variant = ? AND status = ?", string(variant), string(entity.RoundBetting)).
		Order("start_time desc").
		First(&m)
	if result.Error != nil {
		return nil, r.wrapError("getting open round", result.Error)
	}
	return roundModelToEntity(&m), nil
}

// GetLatest returns the most recent round for a variant regardless of state
func (r *RoundRepository) GetLatest(ctx context.Context, variant entity.GameVariant) (*entity.Round, error) {
	var m model.Round
	result := r.db.WithContext(ctx).
		Where("variant = ?", string(variant)).
		Order("start_time desc").
		First(&m)
	if result.Error != nil {
		return nil, r.wrapError("getting latest round", result.Error)
	}
	return roundModelToEntity(&m), nil
}

// GetUnfinished returns the most recent non-terminal round for a variant
func (r *RoundRepository) GetUnfinished(ctx context.Context, variant entity.GameVariant) (*entity.Round, error) {
	var m model.Round
	result := r.db.WithContext(ctx).
		Where("variant = ? AND status IN ?", string(variant), nonTerminalStatuses).
		Order("start_time desc").
		First(&m)
	if result.Error != nil {
		return nil, r.wrapError("getting unfinished round", result.Error)
	}
	return roundModelToEntity(&m), nil
}
