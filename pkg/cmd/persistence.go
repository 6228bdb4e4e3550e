// Package cmd provides common initialization for the command-line binaries.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/shiftmash/shiftmash/pkg/persistence/file"
	"github.com/shiftmash/shiftmash/pkg/persistence/redis"
)

// NewPersistence creates the storage backend the database URL selects:
// redis:// for Redis, anything else is treated as a file path.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parsePersistenceProvider(databaseURL) {
	case "redis":
		p, err := redis.NewPersistence(databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create redis persistence: %w", err))
		}

		if err := p.HealthCheck(ctx); err != nil {
			panic(fmt.Errorf("redis is not reachable: %w", err))
		}

		logger.InfoContext(ctx, "Using redis persistence")

		return p
	default:
		p, err := file.NewPersistence(databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create file persistence: %w", err))
		}

		logger.InfoContext(ctx, "Using file persistence")

		return p
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	switch provider {
	case "redis", "rediss":
		return "redis"
	default:
		return "file"
	}
}
