package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
)

// UseCase handles the deposit/withdrawal workflow: a pending request is
// created by the player and approved or rejected exactly once by an
// operator. Approval is the only path that mutates the balance.
type UseCase struct {
	uow          persistence.UnitOfWork
	paymentRepo  persistence.PaymentRepository
	accounts     *accountUseCase.UseCase
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewUseCase creates a new payment UseCase
func NewUseCase(
	uow persistence.UnitOfWork,
	paymentRepo persistence.PaymentRepository,
	accounts *accountUseCase.UseCase,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *UseCase {
	return &UseCase{
		uow:          uow,
		paymentRepo:  paymentRepo,
		accounts:     accounts,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// RequestDeposit records a pending deposit request
func (u *UseCase) RequestDeposit(ctx context.Context, accountID uint64, amount, reference string) (string, error) {
	return u.request(ctx, accountID, entity.PaymentDeposit, amount, reference)
}

// RequestWithdrawal records a pending withdrawal request. The balance check
// here is a soft one: it rejects obviously uncovered requests early, but
// the authoritative check runs again at approval time.
func (u *UseCase) RequestWithdrawal(ctx context.Context, accountID uint64, amount, reference string) (string, error) {
	cents, err := entity.ParsePositiveAmount(amount)
	if err != nil {
		return "", err
	}

	acct, err := u.accounts.Ensure(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !acct.CanCover(cents) {
		return "", errs.NewInsufficientFundsError(accountID, amount, acct.FormattedBalance())
	}

	return u.request(ctx, accountID, entity.PaymentWithdrawal, amount, reference)
}

func (u *UseCase) request(ctx context.Context, accountID uint64, kind entity.PaymentKind, amount, reference string) (string, error) {
	if _, err := u.accounts.Ensure(ctx, accountID); err != nil {
		return "", err
	}

	tx, err := entity.NewPaymentTransaction(uuid.NewString(), accountID, kind, amount, reference, u.timeProvider)
	if err != nil {
		return "", err
	}

	if err := u.paymentRepo.Create(ctx, tx); err != nil {
		u.logger.Error("Failed to create payment request", map[string]any{
			"account_id": accountID,
			"kind":       string(kind),
			"error":      err.Error(),
		})
		return "", err
	}

	u.logger.Info("Payment requested", map[string]any{
		"tx_id":      tx.TxID,
		"account_id": accountID,
		"kind":       string(kind),
		"amount":     tx.Amount(),
		"reference":  reference,
	})
	return tx.TxID, nil
}

// ListPending returns all pending transactions for the operator view
func (u *UseCase) ListPending(ctx context.Context) ([]*entity.PaymentTransaction, error) {
	return u.paymentRepo.ListPending(ctx)
}

// Resolve approves or rejects a pending transaction. The status flip is a
// conditional update, so two operators racing on the same transaction see
// exactly one winner; the loser gets ErrAlreadyProcessed. On approval a
// deposit credits the account; a withdrawal re-checks funds and debits,
// leaving the transaction pending for retry when the balance has since
// dropped.
func (u *UseCase) Resolve(ctx context.Context, txID string, approve bool) (*entity.PaymentTransaction, error) {
	tx, err := u.paymentRepo.GetByTxID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !tx.IsPending() {
		return nil, errs.ErrAlreadyProcessed
	}

	if !approve {
		return u.reject(ctx, tx)
	}
	return u.approve(ctx, tx)
}

func (u *UseCase) reject(ctx context.Context, tx *entity.PaymentTransaction) (*entity.PaymentTransaction, error) {
	flipped, err := u.paymentRepo.FlipPending(ctx, tx.TxID, entity.PaymentRejected)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, errs.ErrAlreadyProcessed
	}

	tx.MarkRejected(u.timeProvider)
	u.metrics.IncPaymentResolved(string(tx.Kind), string(entity.PaymentRejected))
	u.logger.Info("Payment rejected", map[string]any{
		"tx_id":      tx.TxID,
		"account_id": tx.AccountID,
		"kind":       string(tx.Kind),
	})
	return tx, nil
}

func (u *UseCase) approve(ctx context.Context, tx *entity.PaymentTransaction) (*entity.PaymentTransaction, error) {
	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := u.approveInTx(txCtx, tx); err != nil {
		if rbErr := u.uow.Rollback(txCtx); rbErr != nil {
			u.logger.Error("Rollback failed after approval error", map[string]any{
				"tx_id": tx.TxID,
				"error": rbErr.Error(),
			})
		}
		if errors.Is(err, errs.ErrInsufficientFunds) {
			// The transaction stays pending so the operator can retry once
			// the player's balance recovers
			u.logger.Warn("Withdrawal approval failed on balance re-check", map[string]any{
				"tx_id":      tx.TxID,
				"account_id": tx.AccountID,
				"amount":     tx.Amount(),
			})
		}
		return nil, err
	}

	if err := u.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	tx.MarkApproved(u.timeProvider)
	u.metrics.IncPaymentResolved(string(tx.Kind), string(entity.PaymentApproved))
	u.logger.Info("Payment approved", map[string]any{
		"tx_id":      tx.TxID,
		"account_id": tx.AccountID,
		"kind":       string(tx.Kind),
		"amount":     tx.Amount(),
	})
	return tx, nil
}

// approveInTx flips the status and applies the balance effect in one
// database transaction, so a concurrent approval of the same request can
// never double-apply
func (u *UseCase) approveInTx(txCtx context.Context, tx *entity.PaymentTransaction) error {
	paymentRepo := u.uow.GetPaymentRepository(txCtx)
	accountRepo := u.uow.GetAccountRepository(txCtx)

	delta := tx.AmountCents
	requireSufficient := false
	if tx.Kind == entity.PaymentWithdrawal {
		delta = -tx.AmountCents
		requireSufficient = true
	}

	// Hard balance check for withdrawals happens here, with the row locked
	if _, err := accountRepo.AdjustBalance(txCtx, tx.AccountID, delta, requireSufficient); err != nil {
		return err
	}

	flipped, err := paymentRepo.FlipPending(txCtx, tx.TxID, entity.PaymentApproved)
	if err != nil {
		return err
	}
	if !flipped {
		return errs.ErrAlreadyProcessed
	}
	return nil
}
