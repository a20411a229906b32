package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DimensionCache is a tenant-scoped cache-aside layer for small dimension
// lists (carats, account heads, expense heads and sub-heads). Reads fall
// through to storage on a miss; every write to a dimension table invalidates
// that tenant's list. Cache failures are logged and treated as misses so
// Redis being down never fails a request.
type DimensionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDimensionCache creates a DimensionCache on an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewDimensionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *DimensionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DimensionCache{client: client, ttl: ttl, logger: logger}
}

func (c *DimensionCache) key(tenantID uuid.UUID, dimension string) string {
	return fmt.Sprintf("dimensions:%s:%s", tenantID, dimension)
}

// Invalidate drops the cached list for one dimension of one tenant
func (c *DimensionCache) Invalidate(ctx context.Context, tenantID uuid.UUID, dimension string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(tenantID, dimension)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate dimension cache",
			zap.String("dimension", dimension),
			zap.Error(err))
	}
}

// GetList returns the cached list for a dimension, or (nil, false) on a miss
func GetList[T any](ctx context.Context, c *DimensionCache, tenantID uuid.UUID, dimension string) ([]T, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(tenantID, dimension)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to read dimension cache",
			zap.String("dimension", dimension),
			zap.Error(err))
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("Corrupt dimension cache entry, dropping",
			zap.String("dimension", dimension),
			zap.Error(err))
		c.Invalidate(ctx, tenantID, dimension)
		return nil, false
	}
	return items, true
}

// SetList stores a dimension list with the configured TTL
func SetList[T any](ctx context.Context, c *DimensionCache, tenantID uuid.UUID, dimension string, items []T) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("Failed to marshal dimension list",
			zap.String("dimension", dimension),
			zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(tenantID, dimension), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write dimension cache",
			zap.String("dimension", dimension),
			zap.Error(err))
	}
}
