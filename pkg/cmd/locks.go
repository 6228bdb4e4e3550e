package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftmash/shiftmash/pkg/locking"
)

// NewLockManager creates the approval lock backend. A redis URL gives
// cross-process leases; an empty URL falls back to in-process locking, which
// is only safe for a single API instance.
func NewLockManager(ctx context.Context, logger *slog.Logger, redisURL string) locking.LockManager {
	if redisURL == "" {
		logger.InfoContext(ctx, "Using in-process approval locks")

		return locking.NewMemoryLockManager()
	}

	locks, err := locking.NewRedisLockManagerFromURL(redisURL, locking.DefaultLeaseTTL)
	if err != nil {
		panic(fmt.Errorf("failed to create redis lock manager: %w", err))
	}

	logger.InfoContext(ctx, "Using redis approval locks")

	return locks
}
