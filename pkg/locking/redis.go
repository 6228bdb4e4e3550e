package locking

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultLeaseTTL bounds how long a crashed holder can keep a redis lock.
const DefaultLeaseTTL = 30 * time.Second

// RedisLockManager implements LockManager with SET NX leases so locks work
// across dashboard instances and cannot leak past the TTL.
type RedisLockManager struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisLockManager wraps a redis client. A zero ttl uses DefaultLeaseTTL.
func NewRedisLockManager(client goredis.UniversalClient, ttl time.Duration) *RedisLockManager {
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}

	return &RedisLockManager{client: client, prefix: "shiftmash:lock:", ttl: ttl}
}

// NewRedisLockManagerFromURL connects to the server named by a redis:// URL.
func NewRedisLockManagerFromURL(url string, ttl time.Duration) (*RedisLockManager, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return NewRedisLockManager(goredis.NewClient(opts), ttl), nil
}

// Acquire takes the key if free, with a lease.
func (r *RedisLockManager) Acquire(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, r.prefix+key, 1, r.ttl).Result()
}

// Release frees the key unconditionally.
func (r *RedisLockManager) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
