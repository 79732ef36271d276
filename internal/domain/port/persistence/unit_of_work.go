package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-repository writes inside one database
// transaction. Every ledger mutation that is logically one event (debit
// stake + write bet + credit payout) runs between Begin and Commit so
// readers never observe an intermediate state.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetBetRepository returns a bet repository bound to the current transaction
	GetBetRepository(ctx context.Context) BetRepository

	// GetRoundRepository returns a round repository bound to the current transaction
	GetRoundRepository(ctx context.Context) RoundRepository

	// GetPaymentRepository returns a payment repository bound to the current transaction
	GetPaymentRepository(ctx context.Context) PaymentRepository
}
