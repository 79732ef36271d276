package live

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
)

func TestService_Tick(t *testing.T) {
	t.Run("settles the previous round and opens a fresh one", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		prev := testRound(entity.VariantSpinWin)
		assert.NoError(t, prev.CloseBetting())

		f.roundRepo.On("GetUnfinished", ctx, entity.VariantSpinWin).Return(prev, nil)
		// Slot 2 of the wheel carries multiplier 3
		f.rand.On("Intn", 11).Return(2)
		f.uow.On("Begin", ctx).Return(f.txCtx, nil)

		f.roundRepo.On("Update", f.txCtx, mock.MatchedBy(func(r *entity.Round) bool {
			return r.Status == entity.RoundFinished && r.Outcome != nil && *r.Outcome == "3"
		})).Return(nil)

		// Account 1 holds two winning bets, account 2 one
		bets := []*entity.Bet{
			pendingLiveBet("b1", 1, 1000, prev.ID, ""),
			pendingLiveBet("b2", 1, 500, prev.ID, ""),
			pendingLiveBet("b3", 2, 2000, prev.ID, ""),
		}
		f.txBets.On("ListPendingByRound", f.txCtx, prev.ID).Return(bets, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b1", entity.BetWon, int64(3000)).Return(true, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b2", entity.BetWon, int64(1500)).Return(true, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b3", entity.BetWon, int64(6000)).Return(true, nil)

		// Credits are coalesced to one ledger mutation per account
		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(1), int64(4500), false).
			Return(accountWithBalance(t, 1, "145.00"), nil)
		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(2), int64(6000), false).
			Return(accountWithBalance(t, 2, "160.00"), nil)

		f.uow.On("Commit", f.txCtx).Return(nil)
		f.roundRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Round) bool {
			return r.Variant == entity.VariantSpinWin && r.Status == entity.RoundBetting
		})).Return(nil)

		f.service.Tick(ctx)

		f.roundRepo.AssertExpectations(t)
		f.txBets.AssertExpectations(t)
		f.txAccounts.AssertExpectations(t)
		f.txAccounts.AssertNumberOfCalls(t, "AdjustBalance", 2)
	})

	t.Run("a bust slot loses every bet without touching balances", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		prev := testRound(entity.VariantSpinWin)
		assert.NoError(t, prev.CloseBetting())

		f.roundRepo.On("GetUnfinished", ctx, entity.VariantSpinWin).Return(prev, nil)
		f.rand.On("Intn", 11).Return(0)
		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.roundRepo.On("Update", f.txCtx, mock.Anything).Return(nil)

		bets := []*entity.Bet{
			pendingLiveBet("b1", 1, 1000, prev.ID, ""),
			pendingLiveBet("b2", 2, 2000, prev.ID, ""),
		}
		f.txBets.On("ListPendingByRound", f.txCtx, prev.ID).Return(bets, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b1", entity.BetLost, int64(0)).Return(true, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b2", entity.BetLost, int64(0)).Return(true, nil)

		f.uow.On("Commit", f.txCtx).Return(nil)
		f.roundRepo.On("Create", ctx, mock.Anything).Return(nil)

		f.service.Tick(ctx)

		f.txAccounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an already-resolved bet is never credited again", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		prev := testRound(entity.VariantSpinWin)
		assert.NoError(t, prev.CloseBetting())

		f.roundRepo.On("GetUnfinished", ctx, entity.VariantSpinWin).Return(prev, nil)
		f.rand.On("Intn", 11).Return(2)
		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.roundRepo.On("Update", f.txCtx, mock.Anything).Return(nil)

		bets := []*entity.Bet{
			pendingLiveBet("b1", 1, 1000, prev.ID, ""),
			pendingLiveBet("b2", 2, 2000, prev.ID, ""),
		}
		f.txBets.On("ListPendingByRound", f.txCtx, prev.ID).Return(bets, nil)
		// b1 was settled by an earlier partial attempt
		f.txBets.On("ResolvePending", f.txCtx, "b1", entity.BetWon, int64(3000)).Return(false, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b2", entity.BetWon, int64(6000)).Return(true, nil)

		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(2), int64(6000), false).
			Return(accountWithBalance(t, 2, "160.00"), nil)
		f.uow.On("Commit", f.txCtx).Return(nil)
		f.roundRepo.On("Create", ctx, mock.Anything).Return(nil)

		f.service.Tick(ctx)

		f.txAccounts.AssertNumberOfCalls(t, "AdjustBalance", 1)
	})

	t.Run("reuses a pre-committed outcome instead of redrawing", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		prev := testRound(entity.VariantSpinWin)
		assert.NoError(t, prev.CloseBetting())
		outcome := "5"
		prev.Outcome = &outcome

		f.roundRepo.On("GetUnfinished", ctx, entity.VariantSpinWin).Return(prev, nil)
		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.roundRepo.On("Update", f.txCtx, mock.Anything).Return(nil)

		bets := []*entity.Bet{pendingLiveBet("b1", 1, 1000, prev.ID, "")}
		f.txBets.On("ListPendingByRound", f.txCtx, prev.ID).Return(bets, nil)
		f.txBets.On("ResolvePending", f.txCtx, "b1", entity.BetWon, int64(5000)).Return(true, nil)
		f.txAccounts.On("AdjustBalance", f.txCtx, uint64(1), int64(5000), false).
			Return(accountWithBalance(t, 1, "150.00"), nil)
		f.uow.On("Commit", f.txCtx).Return(nil)
		f.roundRepo.On("Create", ctx, mock.Anything).Return(nil)

		f.service.Tick(ctx)

		f.rand.AssertNotCalled(t, "Intn", mock.Anything)
	})

	t.Run("a failed settlement parks the round and still opens the next one", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		prev := testRound(entity.VariantSpinWin)
		assert.NoError(t, prev.CloseBetting())

		f.roundRepo.On("GetUnfinished", ctx, entity.VariantSpinWin).Return(prev, nil)
		f.rand.On("Intn", 11).Return(2)
		f.uow.On("Begin", ctx).Return(f.txCtx, nil)
		f.roundRepo.On("Update", f.txCtx, mock.Anything).Return(nil)
		f.txBets.On("ListPendingByRound", f.txCtx, prev.ID).Return(nil, errors.New("connection reset"))
		f.uow.On("Rollback", f.txCtx).Return(nil)

		// Parking happens outside the rolled-back transaction
		f.roundRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Round) bool {
			return r.Status == entity.RoundReconcile
		})).Return(nil)
		f.roundRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Round) bool {
			return r.Status == entity.RoundBetting
		})).Return(nil)

		f.service.Tick(ctx)

		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.roundRepo.AssertExpectations(t)
	})

	t.Run("opens the first round when no previous round exists", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		f.roundRepo.On("GetUnfinished", ctx, entity.VariantSpinWin).Return(nil, errs.ErrRoundNotFound)
		f.roundRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Round) bool {
			return r.Variant == entity.VariantSpinWin && r.Status == entity.RoundBetting
		})).Return(nil)

		f.service.Tick(ctx)

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.roundRepo.AssertExpectations(t)
	})
}

func TestService_CloseBetting(t *testing.T) {
	t.Run("moves an open round to spinning", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		round := testRound(entity.VariantSpinWin)
		f.roundRepo.On("GetByID", ctx, round.ID).Return(round, nil)
		f.roundRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Round) bool {
			return r.Status == entity.RoundSpinning
		})).Return(nil)

		f.service.CloseBetting(ctx, round.ID)

		f.roundRepo.AssertExpectations(t)
	})

	t.Run("leaves an already resolved round alone", func(t *testing.T) {
		ctx := context.Background()
		f := newFixture(ctx)

		round := testRound(entity.VariantSpinWin)
		assert.NoError(t, round.CloseBetting())

		f.roundRepo.On("GetByID", ctx, round.ID).Return(round, nil)

		f.service.CloseBetting(ctx, round.ID)

		f.roundRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
