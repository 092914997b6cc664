// Package cache provides the account snapshot cache implementations: Redis
// for deployments, in-memory for single-process runs and tests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/coreledger/banking/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements cache.AccountCache on Redis. Backend failures are
// logged and reported as misses; the cache never fails a request.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache from redis.Options.
func NewRedisCache(opt *redis.Options, prefix string, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisCache) key(number string) string {
	return r.prefix + "account:" + number
}

// Get retrieves and unmarshals a snapshot from Redis.
func (r *RedisCache) Get(ctx context.Context, number string) (*cache.AccountSnapshot, bool) {
	val, err := r.client.Get(ctx, r.key(number)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "account_number", number, "error", err)
		return nil, false
	}
	var snap cache.AccountSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		r.logger.Error("Redis cache unmarshal error", "account_number", number, "error", err)
		return nil, false
	}
	return &snap, true
}

// Set marshals and stores a snapshot with the configured TTL.
func (r *RedisCache) Set(ctx context.Context, snapshot *cache.AccountSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "account_number", snapshot.Number, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.key(snapshot.Number), data, r.ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "account_number", snapshot.Number, "error", err)
	}
}

// Delete invalidates a snapshot.
func (r *RedisCache) Delete(ctx context.Context, number string) {
	if err := r.client.Del(ctx, r.key(number)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "account_number", number, "error", err)
	}
}
