package core

import (
	"github.com/stretchr/testify/mock"
)

// MockMetrics is a testify mock for the Metrics port
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncBetPlaced(variant string) {
	m.Called(variant)
}

func (m *MockMetrics) IncBetSettled(status string) {
	m.Called(status)
}

func (m *MockMetrics) SetRoundOpen(variant string, open bool) {
	m.Called(variant, open)
}

func (m *MockMetrics) IncPaymentResolved(kind, decision string) {
	m.Called(kind, decision)
}
