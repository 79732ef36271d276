package account

import (
	"context"
	"errors"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
)

// UseCase owns account access and the lazy-creation policy: an account
// comes into existence with the configured starting balance the first time
// it is touched.
type UseCase struct {
	accountRepo     persistence.AccountRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	startingBalance string
}

// NewUseCase creates a new account UseCase
func NewUseCase(
	accountRepo persistence.AccountRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	startingBalance string,
) *UseCase {
	return &UseCase{
		accountRepo:     accountRepo,
		timeProvider:    timeProvider,
		logger:          logger,
		startingBalance: startingBalance,
	}
}

// Ensure returns the account with the given ID, creating it with the
// starting balance if it does not exist yet
func (u *UseCase) Ensure(ctx context.Context, accountID uint64) (*entity.Account, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	acct, err := u.accountRepo.GetByID(ctx, accountID)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}

	acct, err = entity.NewAccount(accountID, u.startingBalance, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.accountRepo.Create(ctx, acct); err != nil {
		// A concurrent first access may have created the row between our
		// read and write; re-read in that case.
		if errors.Is(err, errs.ErrDuplicateAccount) {
			return u.accountRepo.GetByID(ctx, accountID)
		}
		u.logger.Error("Failed to create account", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Account created", map[string]any{
		"account_id": accountID,
		"balance":    acct.FormattedBalance(),
	})
	return acct, nil
}

// GetBalance returns the formatted balance of an account, creating the
// account on first access
func (u *UseCase) GetBalance(ctx context.Context, accountID uint64) (string, error) {
	acct, err := u.Ensure(ctx, accountID)
	if err != nil {
		return "", err
	}
	return acct.FormattedBalance(), nil
}

// Adjust applies a signed delta to an account balance. A negative delta
// with requireSufficient fails atomically when the balance cannot cover it.
func (u *UseCase) Adjust(ctx context.Context, accountID uint64, deltaCents int64, requireSufficient bool) (*entity.Account, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	acct, err := u.accountRepo.AdjustBalance(ctx, accountID, deltaCents, requireSufficient)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientFunds) {
			u.logger.Warn("Adjustment rejected for insufficient funds", map[string]any{
				"account_id": accountID,
				"delta":      entity.FormatCents(deltaCents),
			})
		} else {
			u.logger.Error("Balance adjustment failed", map[string]any{
				"account_id": accountID,
				"delta":      entity.FormatCents(deltaCents),
				"error":      err.Error(),
			})
		}
		return nil, err
	}

	u.logger.Debug("Balance adjusted", map[string]any{
		"account_id":  accountID,
		"delta":       entity.FormatCents(deltaCents),
		"new_balance": acct.FormattedBalance(),
	})
	return acct, nil
}
