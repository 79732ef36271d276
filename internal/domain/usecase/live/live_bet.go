package live

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/internal/domain/game"
)

// BetAck acknowledges an accepted live bet; resolution comes later from the
// scheduler or the operator
type BetAck struct {
	BetID      string `json:"betId"`
	RoundID    string `json:"roundId"`
	Stake      string `json:"stake"`
	NewBalance string `json:"newBalance"`
}

// PlaceSpinBet places a bet against the open Spin & Win round. The stake is
// debited immediately; the bet is recorded pending.
func (s *Service) PlaceSpinBet(ctx context.Context, accountID uint64, stake string, roundID string) (*BetAck, error) {
	return s.placeLiveBet(ctx, accountID, stake, roundID, entity.VariantSpinWin, entity.SelectionType(""), "")
}

// PlaceFourColorBet places a color bet against the open 4-Color round
func (s *Service) PlaceFourColorBet(ctx context.Context, accountID uint64, stake string, color string, roundID string) (*BetAck, error) {
	if !game.IsFourColor(color) {
		return nil, fmt.Errorf("%w: color must be one of %v, got %q", errs.ErrInvalidSelection, game.FourColorColors, color)
	}
	return s.placeLiveBet(ctx, accountID, stake, roundID, entity.VariantFourColor, entity.SelectColor, color)
}

// placeLiveBet shares the live placement contract: the round id presented
// by the bettor must match the currently open round and that round must
// still be in the betting phase, both checked atomically with the debit. A
// bet racing a just-closed round fails the id match instead of landing on
// the wrong cycle.
func (s *Service) placeLiveBet(
	ctx context.Context,
	accountID uint64,
	stake string,
	roundID string,
	variant entity.GameVariant,
	selType entity.SelectionType,
	selValue string,
) (*BetAck, error) {
	stakeCents, err := entity.ParsePositiveAmount(stake)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.Ensure(ctx, accountID); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	ack, err := s.placeInTx(txCtx, accountID, stakeCents, stake, roundID, variant, selType, selValue)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after live bet error", map[string]any{
				"account_id": accountID,
				"error":      rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.metrics.IncBetPlaced(string(variant))
	s.logger.Info("Live bet accepted", map[string]any{
		"account_id": accountID,
		"bet_id":     ack.BetID,
		"round_id":   ack.RoundID,
		"variant":    string(variant),
		"stake":      ack.Stake,
	})
	return ack, nil
}

func (s *Service) placeInTx(
	txCtx context.Context,
	accountID uint64,
	stakeCents int64,
	stake string,
	roundID string,
	variant entity.GameVariant,
	selType entity.SelectionType,
	selValue string,
) (*BetAck, error) {
	roundRepo := s.uow.GetRoundRepository(txCtx)
	betRepo := s.uow.GetBetRepository(txCtx)
	accountRepo := s.uow.GetAccountRepository(txCtx)

	open, err := roundRepo.GetOpen(txCtx, variant)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrRoundNotOpen
		}
		return nil, err
	}
	if open.ID != roundID {
		return nil, errs.ErrRoundMismatch
	}
	if !open.IsOpen() {
		return nil, errs.ErrRoundNotOpen
	}

	acct, err := accountRepo.AdjustBalance(txCtx, accountID, -stakeCents, true)
	if err != nil {
		if errs.IsInsufficientFundsError(err) {
			return nil, errs.NewInsufficientFundsError(accountID, stake, "")
		}
		return nil, err
	}

	bet, err := entity.NewBet(uuid.NewString(), accountID, variant, selType, selValue, stake, roundID, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := betRepo.Create(txCtx, bet); err != nil {
		return nil, err
	}

	return &BetAck{
		BetID:      bet.BetID,
		RoundID:    roundID,
		Stake:      bet.Stake(),
		NewBalance: acct.FormattedBalance(),
	}, nil
}
