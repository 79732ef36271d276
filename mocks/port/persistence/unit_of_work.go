package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/port/persistence"
)

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.AccountRepository)
}

func (m *MockUnitOfWork) GetBetRepository(ctx context.Context) persistence.BetRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.BetRepository)
}

func (m *MockUnitOfWork) GetRoundRepository(ctx context.Context) persistence.RoundRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.RoundRepository)
}

func (m *MockUnitOfWork) GetPaymentRepository(ctx context.Context) persistence.PaymentRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.PaymentRepository)
}
