package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
	coremocks "github.com/luckyrupee/wager-engine/mocks/port/core"
	"github.com/luckyrupee/wager-engine/mocks/port/persistence"
)

type testTxKey struct{}

// relaxedLogger allows any log call without asserting on it
func relaxedLogger() *coremocks.MockLogger {
	l := new(coremocks.MockLogger)
	l.On("Debug", mock.Anything, mock.Anything).Maybe()
	l.On("Info", mock.Anything, mock.Anything).Maybe()
	l.On("Warn", mock.Anything, mock.Anything).Maybe()
	l.On("Error", mock.Anything, mock.Anything).Maybe()
	return l
}

type fixture struct {
	uow         *persistence.MockUnitOfWork
	paymentRepo *persistence.MockPaymentRepository
	accountRepo *persistence.MockAccountRepository
	txPayments  *persistence.MockPaymentRepository
	txAccounts  *persistence.MockAccountRepository
	metrics     *coremocks.MockMetrics
	useCase     *UseCase
	txCtx       context.Context
}

func newFixture(ctx context.Context, fixedTime time.Time) *fixture {
	f := &fixture{
		uow:         new(persistence.MockUnitOfWork),
		paymentRepo: new(persistence.MockPaymentRepository),
		accountRepo: new(persistence.MockAccountRepository),
		txPayments:  new(persistence.MockPaymentRepository),
		txAccounts:  new(persistence.MockAccountRepository),
		metrics:     new(coremocks.MockMetrics),
		txCtx:       context.WithValue(ctx, testTxKey{}, "tx"),
	}

	mockTimeProvider := new(coremocks.MockTimeProvider)
	mockTimeProvider.On("Now").Return(fixedTime).Maybe()

	logger := relaxedLogger()
	accounts := accountUseCase.NewUseCase(f.accountRepo, mockTimeProvider, logger, "100.00")
	f.useCase = NewUseCase(f.uow, f.paymentRepo, accounts, mockTimeProvider, logger, f.metrics)
	return f
}

func accountWithBalance(t *testing.T, id uint64, balance string, fixedTime time.Time) *entity.Account {
	mockTimeProvider := new(coremocks.MockTimeProvider)
	mockTimeProvider.On("Now").Return(fixedTime)
	acct, err := entity.NewAccount(id, balance, mockTimeProvider)
	assert.NoError(t, err)
	return acct
}

func pendingTx(t *testing.T, kind entity.PaymentKind, amount string, fixedTime time.Time) *entity.PaymentTransaction {
	mockTimeProvider := new(coremocks.MockTimeProvider)
	mockTimeProvider.On("Now").Return(fixedTime)
	tx, err := entity.NewPaymentTransaction("tx-1", 123, kind, amount, "", mockTimeProvider)
	assert.NoError(t, err)
	return tx
}

func TestUseCase_RequestDeposit(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should record a pending deposit", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		f.accountRepo.On("GetByID", ctx, uint64(123)).
			Return(accountWithBalance(t, 123, "100.00", fixedTime), nil)
		f.paymentRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.PaymentTransaction) bool {
			return tx.AccountID == 123 &&
				tx.Kind == entity.PaymentDeposit &&
				tx.AmountCents == 5000 &&
				tx.Status == entity.PaymentPending
		})).Return(nil)

		txID, err := f.useCase.RequestDeposit(ctx, 123, "50.00", "UPI-1")

		assert.NoError(t, err)
		assert.NotEmpty(t, txID)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("deposit request never touches the balance", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		f.accountRepo.On("GetByID", ctx, uint64(123)).
			Return(accountWithBalance(t, 123, "100.00", fixedTime), nil)
		f.paymentRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.useCase.RequestDeposit(ctx, 123, "50.00", "")

		assert.NoError(t, err)
		f.accountRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should reject malformed amount", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		f.accountRepo.On("GetByID", ctx, uint64(123)).
			Return(accountWithBalance(t, 123, "100.00", fixedTime), nil).Maybe()

		_, err := f.useCase.RequestDeposit(ctx, 123, "fifty", "")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUseCase_RequestWithdrawal(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should record a covered withdrawal request", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		f.accountRepo.On("GetByID", ctx, uint64(123)).
			Return(accountWithBalance(t, 123, "100.00", fixedTime), nil)
		f.paymentRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.PaymentTransaction) bool {
			return tx.Kind == entity.PaymentWithdrawal && tx.AmountCents == 5000
		})).Return(nil)

		txID, err := f.useCase.RequestWithdrawal(ctx, 123, "50.00", "")

		assert.NoError(t, err)
		assert.NotEmpty(t, txID)
	})

	t.Run("should reject a request exceeding the current balance", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		f.accountRepo.On("GetByID", ctx, uint64(123)).
			Return(accountWithBalance(t, 123, "100.00", fixedTime), nil)

		txID, err := f.useCase.RequestWithdrawal(ctx, 123, "150.00", "")

		assert.Empty(t, txID)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		// The rejection carries the current balance for the caller
		var ifErr *errs.InsufficientFundsError
		assert.ErrorAs(t, err, &ifErr)
		assert.Equal(t, "100.00", ifErr.CurrBalance)
	})
}

func TestUseCase_Resolve(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("approving a deposit credits the account", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		tx := pendingTx(t, entity.PaymentDeposit, "50.00", fixedTime)
		f.paymentRepo.On("GetByTxID", ctx, "tx-1").Return(tx, nil)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.uow.On("GetPaymentRepository", f.txCtx).Return(f.txPayments)
		f.uow.On("GetAccountRepository", f.txCtx).Return(f.txAccounts)

		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(123), int64(5000), false).
			Return(accountWithBalance(t, 123, "150.00", fixedTime), nil)
		f.txPayments.On("FlipPending", f.txCtx, "tx-1", entity.PaymentApproved).Return(true, nil)
		f.uow.On("Commit", f.txCtx).Return(nil)
		f.metrics.On("IncPaymentResolved", "deposit", "approved")

		resolved, err := f.useCase.Resolve(ctx, "tx-1", true)

		assert.NoError(t, err)
		assert.Equal(t, entity.PaymentApproved, resolved.Status)
		assert.NotNil(t, resolved.ProcessedAt)
		f.uow.AssertExpectations(t)
		f.txAccounts.AssertExpectations(t)
		f.txPayments.AssertExpectations(t)
		f.metrics.AssertExpectations(t)
	})

	t.Run("approving a withdrawal re-checks funds under the row lock", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		tx := pendingTx(t, entity.PaymentWithdrawal, "50.00", fixedTime)
		f.paymentRepo.On("GetByTxID", ctx, "tx-1").Return(tx, nil)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.uow.On("GetPaymentRepository", f.txCtx).Return(f.txPayments)
		f.uow.On("GetAccountRepository", f.txCtx).Return(f.txAccounts)

		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(123), int64(-5000), true).
			Return(accountWithBalance(t, 123, "50.00", fixedTime), nil)
		f.txPayments.On("FlipPending", f.txCtx, "tx-1", entity.PaymentApproved).Return(true, nil)
		f.uow.On("Commit", f.txCtx).Return(nil)
		f.metrics.On("IncPaymentResolved", "withdrawal", "approved")

		resolved, err := f.useCase.Resolve(ctx, "tx-1", true)

		assert.NoError(t, err)
		assert.Equal(t, entity.PaymentApproved, resolved.Status)
	})

	t.Run("withdrawal approval fails when the balance has since dropped", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		tx := pendingTx(t, entity.PaymentWithdrawal, "50.00", fixedTime)
		f.paymentRepo.On("GetByTxID", ctx, "tx-1").Return(tx, nil)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.uow.On("GetPaymentRepository", f.txCtx).Return(f.txPayments)
		f.uow.On("GetAccountRepository", f.txCtx).Return(f.txAccounts)

		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(123), int64(-5000), true).
			Return(nil, errs.ErrInsufficientFunds)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		resolved, err := f.useCase.Resolve(ctx, "tx-1", true)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		// The transaction stays pending for a later retry
		assert.True(t, tx.IsPending())
		f.txPayments.AssertNotCalled(t, "FlipPending", mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("rejecting never touches the balance", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		tx := pendingTx(t, entity.PaymentWithdrawal, "50.00", fixedTime)
		f.paymentRepo.On("GetByTxID", ctx, "tx-1").Return(tx, nil)
		f.paymentRepo.On("FlipPending", ctx, "tx-1", entity.PaymentRejected).Return(true, nil)
		f.metrics.On("IncPaymentResolved", "withdrawal", "rejected")

		resolved, err := f.useCase.Resolve(ctx, "tx-1", false)

		assert.NoError(t, err)
		assert.Equal(t, entity.PaymentRejected, resolved.Status)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.accountRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second decision on a processed transaction fails", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		tx := pendingTx(t, entity.PaymentDeposit, "50.00", fixedTime)
		mockTimeProvider := new(coremocks.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		tx.MarkApproved(mockTimeProvider)

		f.paymentRepo.On("GetByTxID", ctx, "tx-1").Return(tx, nil)

		resolved, err := f.useCase.Resolve(ctx, "tx-1", true)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("losing the status flip race fails with already processed", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		tx := pendingTx(t, entity.PaymentDeposit, "50.00", fixedTime)
		f.paymentRepo.On("GetByTxID", ctx, "tx-1").Return(tx, nil)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.uow.On("GetPaymentRepository", f.txCtx).Return(f.txPayments)
		f.uow.On("GetAccountRepository", f.txCtx).Return(f.txAccounts)

		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(123), int64(5000), false).
			Return(accountWithBalance(t, 123, "150.00", fixedTime), nil)
		// A concurrent operator flipped the status first
		f.txPayments.On("FlipPending", f.txCtx, "tx-1", entity.PaymentApproved).Return(false, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		resolved, err := f.useCase.Resolve(ctx, "tx-1", true)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
		f.uow.AssertCalled(t, "Rollback", f.txCtx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("unknown transaction propagates not found", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		f.paymentRepo.On("GetByTxID", ctx, "missing").Return(nil, errs.ErrTransactionNotFound)

		resolved, err := f.useCase.Resolve(ctx, "missing", true)

		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestUseCase_ListPending(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should return pending transactions", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx, fixedTime)

		pending := []*entity.PaymentTransaction{pendingTx(t, entity.PaymentDeposit, "50.00", fixedTime)}
		f.paymentRepo.On("ListPending", ctx).Return(pending, nil)

		result, err := f.useCase.ListPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, pending, result)
	})
}
