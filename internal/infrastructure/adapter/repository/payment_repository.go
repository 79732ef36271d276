package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/model"
)

// PaymentRepository implements the PaymentRepository port using GORM
type PaymentRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func paymentModelToEntity(m *model.PaymentTransaction) *entity.PaymentTransaction {
	return &entity.PaymentTransaction{
		ID:          m.ID,
		TxID:        m.TxID,
		AccountID:   m.AccountID,
		Kind:        entity.PaymentKind(m.Kind),
		AmountCents: m.AmountCents,
		Status:      entity.PaymentStatus(m.Status),
		Reference:   m.Reference,
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}
}

// Create saves a new pending payment transaction
func (r *PaymentRepository) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	m := model.PaymentTransaction{
		TxID:        tx.TxID,
		AccountID:   tx.AccountID,
		Kind:        string(tx.Kind),
		AmountCents: tx.AmountCents,
		Status:      string(tx.Status),
		Reference:   tx.Reference,
		CreatedAt:   tx.CreatedAt,
		ProcessedAt: tx.ProcessedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to create payment transaction", map[string]any{
			"tx_id":      tx.TxID,
			"account_id": tx.AccountID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	tx.ID = m.ID
	return nil
}

// GetByTxID retrieves a payment transaction by its external ID
func (r *PaymentRepository) GetByTxID(ctx context.Context, txID string) (*entity.PaymentTransaction, error) {
	var m model.PaymentTransaction
	result := r.db.WithContext(ctx).Where("tx_id = ?", txID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return paymentModelToEntity(&m), nil
}

// ListPending returns all pending transactions, oldest first
func (r *PaymentRepository) ListPending(ctx context.Context) ([]*entity.PaymentTransaction, error) {
	var ms []model.PaymentTransaction
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.PaymentPending)).
		Order("created_at asc").
		Find(&ms)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txs := make([]*entity.PaymentTransaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, paymentModelToEntity(&ms[i]))
	}
	return txs, nil
}

// FlipPending conditionally moves a transaction out of pending. Zero rows
// affected means another operation won the race.
func (r *PaymentRepository) FlipPending(ctx context.Context, txID string, to entity.PaymentStatus) (bool, error) {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("tx_id = ? AND status = ?", txID, string(entity.PaymentPending)).
		Updates(map[string]interface{}{
			"status":       string(to),
			"processed_at": now,
		})
	if result.Error != nil {
		r.logger.Error("Failed to flip payment status", map[string]any{
			"tx_id":  txID,
			"status": string(to),
			"error":  result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return result.RowsAffected > 0, nil
}
