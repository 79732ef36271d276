package live

import (
	"context"
	"fmt"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/internal/domain/game"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
)

// ColorTotalView is the operator's running total for one color
type ColorTotalView struct {
	Color    string `json:"color"`
	BetCount int64  `json:"betCount"`
	Amount   string `json:"amount"`
}

// StartFourColorRound opens a fresh operator-driven round. Exactly one
// 4-Color round may be open at a time.
func (s *Service) StartFourColorRound(ctx context.Context) (string, error) {
	s.fourMu.Lock()
	defer s.fourMu.Unlock()

	roundRepo := s.uow.GetRoundRepository(ctx)

	if open, err := roundRepo.GetUnfinished(ctx, entity.VariantFourColor); err == nil && open != nil {
		return "", fmt.Errorf("%w: round %s", errs.ErrRoundAlreadyOpen, open.ID)
	} else if err != nil && !errs.IsNotFoundError(err) {
		return "", err
	}

	round := entity.NewRound(entity.VariantFourColor, s.cfg.FourColorWindow, s.cfg.FourColorWindow, s.timeProvider)
	if err := roundRepo.Create(ctx, round); err != nil {
		return "", err
	}

	s.metrics.SetRoundOpen(string(entity.VariantFourColor), true)
	s.publish(ctx, round)
	s.logger.Info("Four-color round opened", map[string]any{
		"round_id": round.ID,
	})
	return round.ID, nil
}

// FourColorTotals returns per-color bet counts and stake sums for the open
// round, padded with zero rows so every color is always present
func (s *Service) FourColorTotals(ctx context.Context) (string, []ColorTotalView, error) {
	roundRepo := s.uow.GetRoundRepository(ctx)
	betRepo := s.uow.GetBetRepository(ctx)

	round, err := roundRepo.GetUnfinished(ctx, entity.VariantFourColor)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return "", nil, errs.ErrRoundNotOpen
		}
		return "", nil, err
	}

	totals, err := betRepo.TotalsByRound(ctx, round.ID)
	if err != nil {
		return "", nil, err
	}

	byColor := make(map[string]persistence.ColorTotal, len(totals))
	for _, t := range totals {
		byColor[t.Color] = t
	}

	views := make([]ColorTotalView, 0, len(game.FourColorColors))
	for _, c := range game.FourColorColors {
		t := byColor[c]
		views = append(views, ColorTotalView{
			Color:    c,
			BetCount: t.BetCount,
			Amount:   entity.FormatCents(t.AmountCents),
		})
	}
	return round.ID, views, nil
}

// EndFourColorRound closes betting, settles every bet against the supplied
// winning color and moves the round to awarding. The outcome here is the
// operator's decision, never a random draw.
func (s *Service) EndFourColorRound(ctx context.Context, winningColor string) (*SettlementSummary, error) {
	if !game.IsFourColor(winningColor) {
		return nil, fmt.Errorf("%w: color must be one of %v, got %q", errs.ErrInvalidSelection, game.FourColorColors, winningColor)
	}

	s.fourMu.Lock()
	defer s.fourMu.Unlock()

	roundRepo := s.uow.GetRoundRepository(ctx)
	round, err := roundRepo.GetUnfinished(ctx, entity.VariantFourColor)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrRoundNotOpen
		}
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.endFourColorInTx(txCtx, round, winningColor)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after four-color settlement error", map[string]any{
				"round_id": round.ID,
				"error":    rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.metrics.SetRoundOpen(string(entity.VariantFourColor), false)
	s.publish(ctx, round)
	s.logger.Info("Four-color round settled", map[string]any{
		"round_id":      summary.RoundID,
		"winning_color": winningColor,
		"total_bets":    summary.TotalBets,
		"winning_bets":  summary.WinningBets,
		"total_payout":  summary.TotalPayout,
	})
	return summary, nil
}

func (s *Service) endFourColorInTx(txCtx context.Context, round *entity.Round, winningColor string) (*SettlementSummary, error) {
	roundRepo := s.uow.GetRoundRepository(txCtx)
	betRepo := s.uow.GetBetRepository(txCtx)
	accountRepo := s.uow.GetAccountRepository(txCtx)

	round.Finish(winningColor, entity.RoundAwarding, s.timeProvider)
	if err := roundRepo.Update(txCtx, round); err != nil {
		return nil, err
	}

	return s.settleRound(txCtx, betRepo, accountRepo, round, winningColor, func(b *entity.Bet) int64 {
		if b.SelectionValue != winningColor {
			return 0
		}
		return entity.ApplyRate(b.StakeCents, game.RateFourColor)
	})
}
