package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
)

// EntityCache caches one entity type under "<entity>:<id>" keys with a fixed
// TTL. All operations are best-effort: Redis failures are logged and treated
// as misses so a cache outage never takes the API down with it.
type EntityCache[T any] struct {
	rdb     goredis.Cmdable
	entity  string
	ttl     time.Duration
	metrics *metrics.CacheMetrics
}

// NewEntityCache creates a cache for the given entity name. The metrics
// argument may be nil.
func NewEntityCache[T any](rdb goredis.Cmdable, entity string, ttl time.Duration, m *metrics.CacheMetrics) *EntityCache[T] {
	return &EntityCache[T]{rdb: rdb, entity: entity, ttl: ttl, metrics: m}
}

func (c *EntityCache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.entity, id)
}

func (c *EntityCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.Warn("Redis entity cache GET failed", "entity", c.entity, "key", key, "error", err)
		}
		c.recordMiss()
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		slog.Warn("Failed to unmarshal cached entity, evicting", "entity", c.entity, "key", key, "error", err)
		c.Evict(ctx, key)
		c.recordMiss()
		return zero, false
	}

	c.recordHit()
	return value, true
}

func (c *EntityCache[T]) Put(ctx context.Context, key string, value T) {
	encoded, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to marshal entity for cache", "entity", c.entity, "key", key, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, c.key(key), encoded, c.ttl).Err(); err != nil {
		slog.Warn("Failed to populate entity cache", "entity", c.entity, "key", key, "error", err)
	}
}

func (c *EntityCache[T]) Evict(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, c.key(key)).Err(); err != nil {
		slog.Warn("Failed to evict entity cache key", "entity", c.entity, "key", key, "error", err)
		return
	}
	if c.metrics != nil {
		c.metrics.Evictions.WithLabelValues(c.entity).Inc()
	}
}

func (c *EntityCache[T]) recordHit() {
	if c.metrics != nil {
		c.metrics.Hits.WithLabelValues(c.entity).Inc()
	}
}

func (c *EntityCache[T]) recordMiss() {
	if c.metrics != nil {
		c.metrics.Misses.WithLabelValues(c.entity).Inc()
	}
}
