// Package locking provides the advisory mutual exclusion that guards
// approval operations. Locks are non-blocking: contention is a fast failure
// surfaced to the caller, never a wait.
package locking

import (
	"context"
	"sync"
)

// LockManager holds a set of advisory lock keys. Acquire returns false when
// the key is already held; Release is idempotent and never fails on a key
// that is not held.
type LockManager interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// MemoryLockManager is a process-local lock table. It has no expiry: safe
// only because every acquisition is paired with a deferred release around a
// single synchronous operation.
type MemoryLockManager struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryLockManager creates an empty lock table.
func NewMemoryLockManager() *MemoryLockManager {
	return &MemoryLockManager{held: make(map[string]struct{})}
}

// Acquire takes the key if free.
func (m *MemoryLockManager) Acquire(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.held[key]; taken {
		return false, nil
	}

	m.held[key] = struct{}{}

	return true, nil
}

// Release frees the key unconditionally.
func (m *MemoryLockManager) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.held, key)

	return nil
}
