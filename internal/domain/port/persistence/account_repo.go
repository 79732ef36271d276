package persistence

import (
	"context"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// AccountRepository defines the ledger's storage contract
type AccountRepository interface {
	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account with the given ID exists
	// - ErrDatabaseConnection: if the database is unavailable
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// Create creates a new account
	//
	// Possible errors:
	// - ErrDuplicateAccount: if an account with the same ID already exists
	// - ErrDatabaseConnection: if the database is unavailable
	Create(ctx context.Context, account *entity.Account) error

	// AdjustBalance atomically applies a signed delta to an account balance.
	// The read-modify-write runs under a row lock so concurrent adjustments
	// serialize. With requireSufficient a negative delta that would drive the
	// balance below zero fails with no effect.
	//
	// Possible errors:
	// - ErrAccountNotFound: if the account doesn't exist
	// - ErrInsufficientFunds: if requireSufficient and the balance can't cover the delta
	// - ErrAccountLocked: if the row lock could not be obtained
	// - ErrDatabaseConnection: if the database is unavailable
	AdjustBalance(ctx context.Context, accountID uint64, deltaCents int64, requireSufficient bool) (*entity.Account, error)
}
