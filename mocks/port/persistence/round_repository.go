package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// MockRoundRepository is a testify mock for the RoundRepository port
type MockRoundRepository struct {
	mock.Mock
}

func (m *MockRoundRepository) Create(ctx context.Context, round *entity.Round) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockRoundRepository) Update(ctx context.Context, round *entity.Round) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockRoundRepository) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Round), args.Error(1)
}

func (m *MockRoundRepository) GetOpen(ctx context.Context, variant entity.GameVariant) (*entity.Round, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Round), args.Error(1)
}

func (m *MockRoundRepository) GetLatest(ctx context.Context, variant entity.GameVariant) (*entity.Round, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Round), args.Error(1)
}

func (m *MockRoundRepository) GetUnfinished(ctx context.Context, variant entity.GameVariant) (*entity.Round, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Round), args.Error(1)
}
