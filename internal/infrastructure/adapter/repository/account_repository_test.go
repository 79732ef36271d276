package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/database"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/logger"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/repository"
)

func setupRepoTest(t *testing.T) *database.TestDBManager {
	t.Helper()

	database.SkipWithoutTestDB(t)

	tdb := database.NewTestDBManager(t, logger.NewNoopLogger())
	tdb.Connect(t)
	t.Cleanup(func() { tdb.Close(t) })
	tdb.SetupTestDB(t)
	return tdb
}

func TestAccountRepository_AdjustBalance_ConcurrentDebits(t *testing.T) {
	tdb := setupRepoTest(t)
	ctx := context.Background()

	tdb.CreateTestAccount(t, 42, 10000)
	repo := repository.NewAccountRepository(tdb.Manager.DB(), tdb.TimeProvider, tdb.Logger)

	// Two 60.00 debits race a 100.00 balance. The row lock serializes
	// them, so exactly one clears and the loser sees insufficient funds.
	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AdjustBalance(ctx, 42, -6000, true)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	accepted, rejected := 0, 0
	for err := range errCh {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		rejected++
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)

	acct, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), acct.Balance())
	assert.Equal(t, "40.00", acct.FormattedBalance())
}

func TestAccountRepository_AdjustBalance_LeavesBetCountAlone(t *testing.T) {
	tdb := setupRepoTest(t)
	ctx := context.Background()

	tdb.CreateTestAccount(t, 7, 10000)
	accounts := repository.NewAccountRepository(tdb.Manager.DB(), tdb.TimeProvider, tdb.Logger)
	bets := repository.NewBetRepository(tdb.Manager.DB(), tdb.TimeProvider, tdb.Logger)

	// Deposits, withdrawals and payouts all go through AdjustBalance and
	// none of them places a bet
	_, err := accounts.AdjustBalance(ctx, 7, 5000, false)
	require.NoError(t, err)
	_, err = accounts.AdjustBalance(ctx, 7, -2000, true)
	require.NoError(t, err)

	acct, err := accounts.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), acct.BetCount)

	bet, err := entity.NewBet(uuid.NewString(), 7, entity.VariantOddEven, entity.SelectParity, "odd", "10.00", "", tdb.TimeProvider)
	require.NoError(t, err)
	require.NoError(t, bets.Create(ctx, bet))

	acct, err = accounts.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), acct.BetCount)
}
