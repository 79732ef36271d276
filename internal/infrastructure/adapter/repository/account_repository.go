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

// AccountRepository implements the AccountRepository port using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *AccountRepository) modelToEntity(m *model.Account) (*entity.Account, error) {
	acct, err := entity.NewAccount(m.ID, entity.FormatCents(m.Balance), r.timeProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hydrate account: %s", errs.ErrInternalServer, err.Error())
	}
	acct.CreatedAt = m.CreatedAt
	acct.UpdatedAt = m.UpdatedAt
	acct.BetCount = m.BetCount
	return acct, nil
}

func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateAccount
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrAccountLocked
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}
	return r.modelToEntity(&m)
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, acct *entity.Account) error {
	m := model.Account{
		ID:        acct.ID,
		Balance:   acct.Balance(),
		CreatedAt: acct.CreatedAt,
		UpdatedAt: acct.UpdatedAt,
		BetCount:  acct.BetCount,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, acct.ID)
	}

	r.logger.Info("Account row created", map[string]any{
		"account_id": acct.ID,
		"balance":    acct.FormattedBalance(),
	})
	return nil
}

// AdjustBalance applies a signed delta under an exclusive row lock. When the
// repository is bound to an outer transaction the lock scope is that
// transaction; otherwise a local one wraps the read-modify-write.
func (r *AccountRepository) AdjustBalance(ctx context.Context, accountID uint64, deltaCents int64, requireSufficient bool) (*entity.Account, error) {
	var acct *entity.Account

	adjust := func(tx *gorm.DB) error {
		var m model.Account
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, accountID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrAccountNotFound
			}
			return result.Error
		}

		newBalance := m.Balance + deltaCents
		if newBalance < 0 {
			if requireSufficient {
				return errs.ErrInsufficientFunds
			}
			// Unconditional credits never drive a balance negative; a
			// negative result here means a caller bug
			return fmt.Errorf("%w: adjustment would make balance negative", errs.ErrInternalServer)
		}

		m.Balance = newBalance
		m.UpdatedAt = r.timeProvider.Now()

		result = tx.Model(&m).Updates(map[string]interface{}{
			"balance":    m.Balance,
			"updated_at": m.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		var err error
		acct, err = r.modelToEntity(&m)
		return err
	}

	var err error
	if isTransactionBound(r.db) {
		err = adjust(r.db.WithContext(ctx))
	} else {
		err = r.db.WithContext(ctx).Transaction(adjust)
	}

	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) || errors.Is(err, errs.ErrInsufficientFunds) {
			return nil, err
		}
		if r.errorClassifier.IsLockError(err) {
			r.logger.Warn("Account is locked by another operation", map[string]any{
				"account_id": accountID,
				"error":      err.Error(),
			})
			return nil, errs.ErrAccountLocked
		}
		return nil, r.handleDatabaseError("adjusting balance", err, accountID)
	}

	return acct, nil
}

// isTransactionBound reports whether the gorm handle is already inside a
// transaction (bound via the unit of work)
func isTransactionBound(db *gorm.DB) bool {
	committer, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok && committer != nil
}
