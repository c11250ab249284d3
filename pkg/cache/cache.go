/*
Package cache is the read-through cache for list endpoints.

Values are opaque bytes, normally the JSON body of a response. Writers invalidate
after their transaction commits; entries also expire after a TTL, so a failed
invalidation only serves stale data until then.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"foodorder/pkg/logger"

	"go.uber.org/zap"
)

// DefaultTTL bounds staleness of every cached list.
const DefaultTTL = 1800 * time.Second

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// FlushAll drops every entry in this cache's keyspace.
	FlushAll(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Key builds "{resource}:{operation}:{subject}", e.g. carts:getCarts:42.
func Key(resource, operation, subject string) string {
	return resource + ":" + operation + ":" + subject
}

// UserKey is Key with a numeric user id subject.
func UserKey(resource, operation string, userID uint) string {
	return Key(resource, operation, strconv.FormatUint(uint64(userID), 10))
}

// Remember serves key from c, or runs compute, stores its JSON encoding for ttl and
// returns it. A failing cache never fails the read: errors are logged and compute runs.
// hit reports whether the bytes came from the cache.
func Remember(ctx context.Context, c Cache, key string, ttl time.Duration, compute func(ctx context.Context) (interface{}, error)) (data json.RawMessage, hit bool, err error) {
	cached, err := c.Get(ctx, key)
	switch {
	case err == nil:
		return json.RawMessage(cached), true, nil
	case !errors.Is(err, ErrMiss):
		logger.Warn("Cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return encoded, false, nil
}

// Invalidate deletes keys and only logs failures; callers have already committed.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateAll flushes c and only logs failures.
func InvalidateAll(ctx context.Context, c Cache) {
	if err := c.FlushAll(ctx); err != nil {
		logger.Warn("Cache flush failed", zap.Error(err))
	}
}
