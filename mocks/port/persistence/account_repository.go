package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// MockAccountRepository is a testify mock for the AccountRepository port
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, accountID uint64, deltaCents int64, requireSufficient bool) (*entity.Account, error) {
	args := m.Called(ctx, accountID, deltaCents, requireSufficient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}
