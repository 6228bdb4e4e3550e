package locking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	ctx := context.Background()
	locks := NewMemoryLockManager()

	ok, err := locks.Acquire(ctx, "approve:req1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locks.Acquire(ctx, "approve:req1")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire of a held key must fail fast")

	// a different key is unaffected
	ok, err = locks.Acquire(ctx, "approve:req2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	locks := NewMemoryLockManager()

	ok, err := locks.Acquire(ctx, "approve:req1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locks.Release(ctx, "approve:req1"))
	require.NoError(t, locks.Release(ctx, "approve:req1"))
	require.NoError(t, locks.Release(ctx, "never-held"))

	ok, err = locks.Acquire(ctx, "approve:req1")
	require.NoError(t, err)
	assert.True(t, ok, "released key is acquirable again")
}

func TestConcurrentAcquireHasOneWinner(t *testing.T) {
	ctx := context.Background()
	locks := NewMemoryLockManager()

	const contenders = 32

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for range contenders {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ok, err := locks.Acquire(ctx, "approve:recruiting:r1")
			require.NoError(t, err)

			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, wins)
}
