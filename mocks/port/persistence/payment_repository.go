package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
)

// MockPaymentRepository is a testify mock for the PaymentRepository port
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByTxID(ctx context.Context, txID string) (*entity.PaymentTransaction, error) {
	args := m.Called(ctx, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentRepository) ListPending(ctx context.Context) ([]*entity.PaymentTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentRepository) FlipPending(ctx context.Context, txID string, to entity.PaymentStatus) (bool, error) {
	args := m.Called(ctx, txID, to)
	return args.Bool(0), args.Error(1)
}
