package live

import (
	"context"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
)

// SettlementSummary reports what a round resolution did
type SettlementSummary struct {
	RoundID     string `json:"roundId"`
	Outcome     string `json:"outcome"`
	TotalBets   int    `json:"totalBets"`
	WinningBets int    `json:"winningBets"`
	TotalPayout string `json:"totalPayout"`
}

// settleRound resolves every pending bet of a round inside the caller's
// transaction. The round outcome is fixed by the caller before this runs;
// payoutFor maps a bet to its payout in cents (0 = lost). Credits are
// coalesced per account so N winning bets of one account cost a single
// ledger mutation. Bets that already left pending are skipped, keeping
// settlement idempotent per bet.
func (s *Service) settleRound(
	txCtx context.Context,
	betRepo persistence.BetRepository,
	accountRepo persistence.AccountRepository,
	round *entity.Round,
	outcome string,
	payoutFor func(*entity.Bet) int64,
) (*SettlementSummary, error) {
	bets, err := betRepo.ListPendingByRound(txCtx, round.ID)
	if err != nil {
		return nil, err
	}

	summary := &SettlementSummary{
		RoundID: round.ID,
		Outcome: outcome,
	}

	credits := make(map[uint64]int64)
	var totalPayout int64

	for _, bet := range bets {
		payout := payoutFor(bet)
		status := entity.BetLost
		if payout > 0 {
			status = entity.BetWon
		}

		resolved, err := betRepo.ResolvePending(txCtx, bet.BetID, status, payout)
		if err != nil {
			return nil, err
		}
		if !resolved {
			// Already settled by a previous attempt; never credit twice
			continue
		}

		summary.TotalBets++
		s.metrics.IncBetSettled(string(status))
		if payout > 0 {
			summary.WinningBets++
			credits[bet.AccountID] += payout
			totalPayout += payout
		}
	}

	for accountID, payout := range credits {
		if _, err := accountRepo.AdjustBalance(txCtx, accountID, payout, false); err != nil {
			return nil, err
		}
	}

	summary.TotalPayout = entity.FormatCents(totalPayout)
	return summary, nil
}
