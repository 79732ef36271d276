package live

import (
	"context"
	"strconv"
	"time"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/internal/domain/game"
)

// Run drives the Spin & Win cycle until the context is canceled. The first
// tick fires immediately so a round is open as soon as the service starts.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Spin & Win scheduler started", map[string]any{
		"cycle":      s.cfg.SpinCycle.String(),
		"bet_window": s.cfg.SpinBetWindow.String(),
	})

	s.Tick(ctx)

	ticker := time.NewTicker(s.cfg.SpinCycle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Spin & Win scheduler stopped", nil)
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one scheduler cycle: resolve the previous round if one is
// still unfinished, then always open a fresh round. Ticks are mutually
// exclusive, so an early or late timer fire can never double-resolve a
// round or skip round creation.
func (s *Service) Tick(ctx context.Context) {
	s.spinMu.Lock()
	defer s.spinMu.Unlock()

	roundRepo := s.uow.GetRoundRepository(ctx)

	prev, err := roundRepo.GetUnfinished(ctx, entity.VariantSpinWin)
	if err != nil && !errs.IsNotFoundError(err) {
		s.logger.Error("Failed to load unfinished round", map[string]any{
			"error": err.Error(),
		})
	}

	if prev != nil {
		if err := s.resolveSpinRound(ctx, prev); err != nil {
			// Fail-closed on settlement: the round is parked for manual
			// reconciliation, its bets stay pending, and betting resumes
			// with the next round regardless.
			s.logger.Error("Round settlement failed, parking round for reconciliation", (&errs.SettlementError{
				RoundID: prev.ID,
				Variant: string(prev.Variant),
				Err:     err,
			}).LogFields())
			prev.MarkReconcile(s.timeProvider)
			if updErr := roundRepo.Update(ctx, prev); updErr != nil {
				s.logger.Error("Failed to park round", map[string]any{
					"round_id": prev.ID,
					"error":    updErr.Error(),
				})
			}
		}
	}

	// Fail-open on round creation: a new round starts before the tick ends
	// no matter what happened above
	if err := s.openSpinRound(ctx); err != nil {
		s.logger.Error("Failed to open new round", map[string]any{
			"error": err.Error(),
		})
		s.metrics.SetRoundOpen(string(entity.VariantSpinWin), false)
	}
}

// resolveSpinRound fixes the wheel outcome and settles every bet tied to
// the round in one transaction
func (s *Service) resolveSpinRound(ctx context.Context, round *entity.Round) error {
	// The outcome is fixed before any bet is touched. A pre-committed
	// outcome from an earlier partial attempt is reused rather than redrawn.
	var multiplier int64
	if round.Outcome != nil {
		m, err := game.ParseSpinWinOutcome(*round.Outcome)
		if err != nil {
			return err
		}
		multiplier = m
	} else {
		multiplier = game.DrawSpinWin(s.rand)
	}
	outcome := strconv.FormatInt(multiplier, 10)

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	summary, err := s.settleSpinInTx(txCtx, round, outcome, multiplier)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after settlement error", map[string]any{
				"round_id": round.ID,
				"error":    rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.publish(ctx, round)
	s.logger.Info("Round settled", map[string]any{
		"round_id":     summary.RoundID,
		"multiplier":   multiplier,
		"total_bets":   summary.TotalBets,
		"winning_bets": summary.WinningBets,
		"total_payout": summary.TotalPayout,
	})
	return nil
}

func (s *Service) settleSpinInTx(txCtx context.Context, round *entity.Round, outcome string, multiplier int64) (*SettlementSummary, error) {
	roundRepo := s.uow.GetRoundRepository(txCtx)
	betRepo := s.uow.GetBetRepository(txCtx)
	accountRepo := s.uow.GetAccountRepository(txCtx)

	if round.IsOpen() {
		if err := round.CloseBetting(); err != nil {
			return nil, err
		}
	}
	round.Finish(outcome, entity.RoundFinished, s.timeProvider)
	if err := roundRepo.Update(txCtx, round); err != nil {
		return nil, err
	}

	return s.settleRound(txCtx, betRepo, accountRepo, round, outcome, func(b *entity.Bet) int64 {
		if multiplier == 0 {
			return 0
		}
		return b.StakeCents * multiplier
	})
}

// openSpinRound publishes a fresh betting round, atomically replacing the
// previous round as "the current round"
func (s *Service) openSpinRound(ctx context.Context) error {
	roundRepo := s.uow.GetRoundRepository(ctx)

	round := entity.NewRound(entity.VariantSpinWin, s.cfg.SpinBetWindow, s.cfg.SpinCycle, s.timeProvider)
	if err := roundRepo.Create(ctx, round); err != nil {
		return err
	}

	s.metrics.SetRoundOpen(string(entity.VariantSpinWin), true)
	s.publish(ctx, round)
	s.logger.Info("Round opened", map[string]any{
		"round_id":  round.ID,
		"bet_close": round.BetCloseTime,
		"end":       round.EndTime,
	})

	// Close the betting window partway through the cycle; the wheel spins
	// for the remainder until the next tick resolves it
	time.AfterFunc(s.cfg.SpinBetWindow, func() {
		s.CloseBetting(ctx, round.ID)
	})
	return nil
}

// CloseBetting moves an open round into the spinning phase once its betting
// window elapses. A round that was already resolved by an overlapping tick
// is left alone.
func (s *Service) CloseBetting(ctx context.Context, roundID string) {
	s.spinMu.Lock()
	defer s.spinMu.Unlock()

	roundRepo := s.uow.GetRoundRepository(ctx)
	round, err := roundRepo.GetByID(ctx, roundID)
	if err != nil {
		s.logger.Warn("Failed to load round for bet close", map[string]any{
			"round_id": roundID,
			"error":    err.Error(),
		})
		return
	}
	if !round.IsOpen() {
		return
	}

	if err := round.CloseBetting(); err != nil {
		return
	}
	if err := roundRepo.Update(ctx, round); err != nil {
		s.logger.Error("Failed to close betting window", map[string]any{
			"round_id": roundID,
			"error":    err.Error(),
		})
		return
	}

	s.publish(ctx, round)
	s.logger.Info("Betting window closed", map[string]any{
		"round_id": roundID,
	})
}
