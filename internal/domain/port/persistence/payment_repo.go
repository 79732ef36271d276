package persistence

import (
	"context"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// PaymentRepository stores deposit/withdrawal requests
type PaymentRepository interface {
	// Create saves a new pending payment transaction
	Create(ctx context.Context, tx *entity.PaymentTransaction) error

	// GetByTxID retrieves a payment transaction by its external ID
	//
	// Possible errors:
	// - ErrTransactionNotFound
	GetByTxID(ctx context.Context, txID string) (*entity.PaymentTransaction, error)

	// ListPending returns all pending transactions, oldest first
	ListPending(ctx context.Context) ([]*entity.PaymentTransaction, error)

	// FlipPending moves a transaction out of pending with a conditional
	// update. Returns false without error when the transaction was no longer
	// pending, which guards concurrent double-approval.
	FlipPending(ctx context.Context, txID string, to entity.PaymentStatus) (bool, error)
}
