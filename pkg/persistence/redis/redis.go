// Package redis provides redis-backed persistence. Collections are stored as
// wholesale JSON values under namespaced keys, keeping the same contract as
// the file backend while allowing several dashboard instances to share state.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shiftmash/shiftmash/pkg/persistence"
)

const (
	storesKey      = "shiftmash:stores"
	workersKey     = "shiftmash:workers"
	shiftsKey      = "shiftmash:shifts"
	publishingsKey = "shiftmash:publishings"
	requestsKey    = "shiftmash:requests"
)

// Persistence implements persistence.Persistence on a redis server.
type Persistence struct {
	client goredis.UniversalClient
}

// NewPersistence connects to the redis server named by a redis:// URL.
func NewPersistence(url string) (*Persistence, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, persistence.NewStorageError("NewPersistence", url, err)
	}

	return &Persistence{client: goredis.NewClient(opts)}, nil
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client goredis.UniversalClient) *Persistence {
	return &Persistence{client: client}
}

// Close releases the client connection pool.
func (rp *Persistence) Close(_ context.Context) error {
	return rp.client.Close()
}

// HealthCheck pings the server.
func (rp *Persistence) HealthCheck(ctx context.Context) error {
	if err := rp.client.Ping(ctx).Err(); err != nil {
		return persistence.NewStorageError("HealthCheck", "", err)
	}

	return nil
}

// readKey unmarshals one collection value into out. An absent key leaves out
// untouched, so unseeded collections read as empty.
func (rp *Persistence) readKey(ctx context.Context, op, key string, out any) error {
	data, err := rp.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil
		}

		return persistence.NewStorageError(op, key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return persistence.NewStorageError(op, key, err)
	}

	return nil
}

// writeKey marshals and stores one collection value. Redis SET is atomic, so
// readers never observe a partial document.
func (rp *Persistence) writeKey(ctx context.Context, op, key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return persistence.NewStorageError(op, key, err)
	}

	if err := rp.client.Set(ctx, key, data, 0).Err(); err != nil {
		return persistence.NewStorageError(op, key, err)
	}

	return nil
}
