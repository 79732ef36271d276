package core

import (
	"github.com/stretchr/testify/mock"
)

// MockRandSource is a testify mock for the RandSource port
type MockRandSource struct {
	mock.Mock
}

func (m *MockRandSource) Intn(n int) int {
	args := m.Called(n)
	return args.Int(0)
}
