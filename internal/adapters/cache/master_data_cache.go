package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/ports"
	"github.com/SscSPs/document_reception_app/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// RedisMasterDataCache stores master data listings as JSON strings in Redis.
// Backend failures are logged and treated as misses.
type RedisMasterDataCache struct {
	client redis.Cmdable
}

func NewRedisMasterDataCache(client redis.Cmdable) *RedisMasterDataCache {
	return &RedisMasterDataCache{client: client}
}

var _ ports.MasterDataCache = (*RedisMasterDataCache)(nil)

func (c *RedisMasterDataCache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("Master data cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Discarding undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		_ = c.client.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *RedisMasterDataCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to encode cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Master data cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (c *RedisMasterDataCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Master data cache invalidation failed", slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}

// NoopMasterDataCache always misses. It is used when Redis is not configured.
type NoopMasterDataCache struct{}

var _ ports.MasterDataCache = NoopMasterDataCache{}

func (NoopMasterDataCache) Get(context.Context, string, any) bool          { return false }
func (NoopMasterDataCache) Set(context.Context, string, any, time.Duration) {}
func (NoopMasterDataCache) Invalidate(context.Context, ...string)           {}
