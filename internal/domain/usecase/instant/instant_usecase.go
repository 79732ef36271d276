package instant

import (
	"context"

	"github.com/google/uuid"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/internal/domain/game"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
)

// UseCase is the instant game engine: validate stake, draw outcome, compute
// payout and update ledger plus bet store in one atomic step
type UseCase struct {
	uow          persistence.UnitOfWork
	accounts     *accountUseCase.UseCase
	rand         coreport.RandSource
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewUseCase creates a new instant game UseCase
func NewUseCase(
	uow persistence.UnitOfWork,
	accounts *accountUseCase.UseCase,
	rand coreport.RandSource,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *UseCase {
	return &UseCase{
		uow:          uow,
		accounts:     accounts,
		rand:         rand,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// Result describes a resolved instant bet
type Result struct {
	BetID      string
	Won        bool
	Stake      string
	Payout     string
	NewBalance string
	// Outcome details for display: drawn number, colors and size for
	// colorcash; die roll for oddeven
	Number int
	Colors []string
	Size   string
}

// PlaceBet runs the full instant flow. The stake debit, outcome draw,
// payout credit and the resolved bet record all commit or roll back
// together; a failing placement leaves balance and bet store untouched.
func (u *UseCase) PlaceBet(
	ctx context.Context,
	accountID uint64,
	stake string,
	variant entity.GameVariant,
	selType entity.SelectionType,
	selValue string,
) (*Result, error) {
	if err := game.ValidateInstantSelection(variant, selType, selValue); err != nil {
		return nil, err
	}

	stakeCents, err := entity.ParsePositiveAmount(stake)
	if err != nil {
		return nil, err
	}

	// Lazy account creation happens outside the bet transaction
	if _, err := u.accounts.Ensure(ctx, accountID); err != nil {
		return nil, err
	}

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := u.placeInTx(txCtx, accountID, stakeCents, stake, variant, selType, selValue)
	if err != nil {
		if rbErr := u.uow.Rollback(txCtx); rbErr != nil {
			u.logger.Error("Rollback failed after instant bet error", map[string]any{
				"account_id": accountID,
				"error":      rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := u.uow.Commit(txCtx); err != nil {
		u.logger.Error("Commit failed for instant bet", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		return nil, err
	}

	u.metrics.IncBetPlaced(string(variant))
	if result.Won {
		u.metrics.IncBetSettled(string(entity.BetWon))
	} else {
		u.metrics.IncBetSettled(string(entity.BetLost))
	}

	u.logger.Info("Instant bet resolved", map[string]any{
		"account_id":  accountID,
		"bet_id":      result.BetID,
		"variant":     string(variant),
		"selection":   selValue,
		"stake":       result.Stake,
		"won":         result.Won,
		"payout":      result.Payout,
		"new_balance": result.NewBalance,
	})
	return result, nil
}

func (u *UseCase) placeInTx(
	txCtx context.Context,
	accountID uint64,
	stakeCents int64,
	stake string,
	variant entity.GameVariant,
	selType entity.SelectionType,
	selValue string,
) (*Result, error) {
	accountRepo := u.uow.GetAccountRepository(txCtx)
	betRepo := u.uow.GetBetRepository(txCtx)

	// Debit the stake under the row lock; this is also the sufficiency check
	acct, err := accountRepo.AdjustBalance(txCtx, accountID, -stakeCents, true)
	if err != nil {
		if errs.IsInsufficientFundsError(err) {
			return nil, errs.NewInsufficientFundsError(accountID, stake, "")
		}
		return nil, err
	}

	// Outcome is drawn server-side only after the stake has been accepted
	res := &Result{Stake: entity.FormatCents(stakeCents)}
	var won bool
	var rate int64

	switch variant {
	case entity.VariantColorCash:
		out := game.DrawColorCash(u.rand)
		res.Number = out.Number
		res.Colors = out.Colors
		res.Size = out.Size
		won, rate, err = game.ResolveColorCash(selType, selValue, out)
	case entity.VariantOddEven:
		roll := game.DrawDie(u.rand)
		res.Number = roll
		won, rate, err = game.ResolveOddEven(selValue, roll)
	default:
		return nil, errs.ErrInvalidSelection
	}
	if err != nil {
		return nil, err
	}

	payoutCents := int64(0)
	if won {
		payoutCents = entity.ApplyRate(stakeCents, rate)
		acct, err = accountRepo.AdjustBalance(txCtx, accountID, payoutCents, false)
		if err != nil {
			return nil, err
		}
	}

	bet, err := entity.NewBet(uuid.NewString(), accountID, variant, selType, selValue, stake, "", u.timeProvider)
	if err != nil {
		return nil, err
	}
	bet.Resolve(won, payoutCents, u.timeProvider)

	if err := betRepo.Create(txCtx, bet); err != nil {
		return nil, err
	}

	res.BetID = bet.BetID
	res.Won = won
	res.Payout = entity.FormatCents(payoutCents)
	res.NewBalance = acct.FormattedBalance()
	return res, nil
}

// History returns an account's recent bets for display
func (u *UseCase) History(ctx context.Context, accountID uint64, limit int) ([]*entity.Bet, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	betRepo := u.uow.GetBetRepository(ctx)
	return betRepo.ListByAccount(ctx, accountID, limit)
}
