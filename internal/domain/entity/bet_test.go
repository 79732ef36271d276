package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/mocks/port/core"
)

func TestNewBet(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create pending bet", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		bet, err := NewBet("bet-1", 123, VariantColorCash, SelectNumber, "7", "20.00", "", mockTimeProvider)

		assert.NoError(t, err)
		assert.Equal(t, "bet-1", bet.BetID)
		assert.Equal(t, uint64(123), bet.AccountID)
		assert.Equal(t, int64(2000), bet.StakeCents)
		assert.Equal(t, int64(0), bet.PayoutCents)
		assert.Equal(t, BetPending, bet.Status)
		assert.Equal(t, "", bet.RoundID)
		assert.Nil(t, bet.ResolvedAt)
		assert.False(t, bet.IsResolved())
	})

	t.Run("should attach round ID for live bets", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		bet, err := NewBet("bet-2", 123, VariantSpinWin, SelectionType(""), "", "10.00", "spinwin-1672574400", mockTimeProvider)

		assert.NoError(t, err)
		assert.Equal(t, "spinwin-1672574400", bet.RoundID)
	})

	t.Run("should reject zero account ID", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		bet, err := NewBet("bet-3", 0, VariantColorCash, SelectColor, "green", "20.00", "", mockTimeProvider)

		assert.Nil(t, bet)
		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
	})

	t.Run("should reject empty bet ID", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		bet, err := NewBet("", 123, VariantColorCash, SelectColor, "green", "20.00", "", mockTimeProvider)

		assert.Nil(t, bet)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("should reject unknown variant", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		bet, err := NewBet("bet-4", 123, GameVariant("roulette"), SelectColor, "green", "20.00", "", mockTimeProvider)

		assert.Nil(t, bet)
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})

	t.Run("should reject zero stake", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		bet, err := NewBet("bet-5", 123, VariantColorCash, SelectColor, "green", "0", "", mockTimeProvider)

		assert.Nil(t, bet)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestBet_Resolve(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	newPendingBet := func(t *testing.T) (*Bet, *core.MockTimeProvider) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		bet, err := NewBet("bet-1", 123, VariantColorCash, SelectNumber, "7", "20.00", "", mockTimeProvider)
		assert.NoError(t, err)
		return bet, mockTimeProvider
	}

	t.Run("should resolve a win with payout", func(t *testing.T) {
		bet, mockTimeProvider := newPendingBet(t)

		resolved := bet.Resolve(true, 18000, mockTimeProvider)

		assert.True(t, resolved)
		assert.Equal(t, BetWon, bet.Status)
		assert.Equal(t, int64(18000), bet.PayoutCents)
		assert.Equal(t, "180.00", bet.Payout())
		assert.NotNil(t, bet.ResolvedAt)
		assert.True(t, bet.IsResolved())
	})

	t.Run("should resolve a loss with zero payout", func(t *testing.T) {
		bet, mockTimeProvider := newPendingBet(t)

		resolved := bet.Resolve(false, 0, mockTimeProvider)

		assert.True(t, resolved)
		assert.Equal(t, BetLost, bet.Status)
		assert.Equal(t, int64(0), bet.PayoutCents)
		assert.Equal(t, "0.00", bet.Payout())
	})

	t.Run("should refuse to resolve twice", func(t *testing.T) {
		bet, mockTimeProvider := newPendingBet(t)

		assert.True(t, bet.Resolve(true, 18000, mockTimeProvider))
		assert.False(t, bet.Resolve(false, 0, mockTimeProvider), "second resolution must be a no-op")

		// First resolution wins
		assert.Equal(t, BetWon, bet.Status)
		assert.Equal(t, int64(18000), bet.PayoutCents)
	})
}
