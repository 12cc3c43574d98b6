package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const providerCacheTTL = 5 * time.Minute

// ProviderCache keeps provider schedule snapshots in Redis. A nil cache is
// valid and always misses.
type ProviderCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewProviderCache(rdb *redis.Client, log *zap.Logger) *ProviderCache {
	if rdb == nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProviderCache{rdb: rdb, ttl: providerCacheTTL, log: log}
}

func providerKey(id uint) string {
	return fmt.Sprintf("agenda:provider:%d", id)
}

func (c *ProviderCache) get(ctx context.Context, id uint) (*providerSnapshot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, providerKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("provider cache read failed", zap.Uint("provider_id", id), zap.Error(err))
		}
		return nil, false
	}

	var snap providerSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *ProviderCache) set(ctx context.Context, snap *providerSnapshot) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, providerKey(snap.ProviderID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("provider cache write failed", zap.Uint("provider_id", snap.ProviderID), zap.Error(err))
	}
}

// Invalidate drops the cached snapshot after the provider's schedule or
// account type changes.
func (c *ProviderCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, providerKey(id)).Err(); err != nil {
		c.log.Warn("provider cache invalidate failed", zap.Uint("provider_id", id), zap.Error(err))
	}
}
