package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
)

// MockBetRepository is a testify mock for the BetRepository port
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *entity.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) ResolvePending(ctx context.Context, betID string, status entity.BetStatus, payoutCents int64) (bool, error) {
	args := m.Called(ctx, betID, status, payoutCents)
	return args.Bool(0), args.Error(1)
}

func (m *MockBetRepository) ListPendingByRound(ctx context.Context, roundID string) ([]*entity.Bet, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Bet), args.Error(1)
}

func (m *MockBetRepository) TotalsByRound(ctx context.Context, roundID string) ([]persistence.ColorTotal, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]persistence.ColorTotal), args.Error(1)
}

func (m *MockBetRepository) ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.Bet, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Bet), args.Error(1)
}
