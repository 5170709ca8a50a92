// Package rediscache caches computed amortization schedules in Redis.
//
// Schedules are pure functions of the loan definition, so cache keys are
// derived from a content hash of the definition JSON: a changed definition
// hashes to a new key and old entries simply age out. The cache degrades
// gracefully - every miss or Redis failure falls back to recomputing.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/warp/loan-engine/loan"
)

const keyPrefix = "schedule:"

// ScheduleCache stores computed schedules keyed by definition hash.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a schedule cache around an existing Redis client.
// A nil logger disables logging.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ScheduleCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleCache{client: client, ttl: ttl, logger: logger}
}

// Key derives the cache key for a loan definition.
func Key(definitionJSON string) string {
	sum := sha256.Sum256([]byte(definitionJSON))
	return keyPrefix + hex.EncodeToString(sum[:16])
}

// GetSchedule returns the cached schedule for a key, or false on a miss.
// Redis failures and undecodable payloads count as misses.
func (c *ScheduleCache) GetSchedule(ctx context.Context, key string) ([]loan.Payment, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var payments []loan.Payment
	if err := json.Unmarshal(data, &payments); err != nil {
		c.logger.Warn("schedule cache entry undecodable, dropping", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}

	return payments, true
}

// SetSchedule stores a schedule under a key with the configured TTL.
func (c *ScheduleCache) SetSchedule(ctx context.Context, key string, payments []loan.Payment) error {
	data, err := json.Marshal(payments)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Invalidate removes a cached schedule. Deleting a loan calls this so the
// entry does not linger for its full TTL.
func (c *ScheduleCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Ping verifies connectivity.
func (c *ScheduleCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
