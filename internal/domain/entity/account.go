package entity

import (
	"time"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
)

// Account represents a player account holding a balance
type Account struct {
	ID        uint64    // Unique identifier for the account
	balance   int64     // Balance in cents, kept private so all mutation goes through the methods below
	CreatedAt time.Time // When the account was created
	UpdatedAt time.Time // When the account was last updated
	BetCount  uint64    // Count of bets placed by this account
}

// NewAccount creates a new account with the given ID and starting balance.
// Accounts are created lazily on first access, so the starting balance comes
// from configuration rather than from the caller.
func NewAccount(id uint64, startingBalance string, timeProvider coreport.TimeProvider) (*Account, error) {
	if id == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	cents, err := ParseAmount(startingBalance)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Account{
		ID:        id,
		balance:   cents,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents
func (a *Account) Balance() int64 {
	return a.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (a *Account) FormattedBalance() string {
	return FormatCents(a.balance)
}

// SetBalance updates the balance directly (used by repositories when
// hydrating an account from storage)
func (a *Account) SetBalance(cents int64, timeProvider coreport.TimeProvider) {
	a.balance = cents
	a.UpdatedAt = timeProvider.Now()
}

// CanCover reports whether the account can afford a debit of the given size
func (a *Account) CanCover(cents int64) bool {
	return a.balance >= cents
}

// Credit adds the amount to the balance
func (a *Account) Credit(cents int64, timeProvider coreport.TimeProvider) {
	a.balance += cents
	a.UpdatedAt = timeProvider.Now()
}

// Debit subtracts the amount from the balance if sufficient funds exist.
// Returns ErrInsufficientFunds otherwise, leaving the balance untouched.
func (a *Account) Debit(cents int64, timeProvider coreport.TimeProvider) error {
	if a.balance < cents {
		return errs.ErrInsufficientFunds
	}

	a.balance -= cents
	a.UpdatedAt = timeProvider.Now()
	return nil
}
