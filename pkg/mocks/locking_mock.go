package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLockManager is a mock implementation of the locking.LockManager
// interface.
type MockLockManager struct {
	mock.Mock
}

func (m *MockLockManager) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Error(1)
}

func (m *MockLockManager) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}
