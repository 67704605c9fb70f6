// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/feature/auth/usecase"
)

// CachingTokenRepository decorates a TokenRepository with a Redis read-through
// cache for key lookups. The database stays the source of truth: every Redis
// failure falls back to the inner repository.
type CachingTokenRepository struct {
	inner     usecase.TokenRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.TokenRepository = (*CachingTokenRepository)(nil)

// NewCachingTokenRepository decorates a TokenRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tokens".
func NewCachingTokenRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TokenRepository, namespace string) *CachingTokenRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tokens"
	}
	return &CachingTokenRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// Create persists the token and warms the cache with it.
func (c *CachingTokenRepository) Create(ctx context.Context, t *entity.Token) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.store(ctx, t)
	return nil
}

// FindByKey checks the cache first then falls back to the database.
func (c *CachingTokenRepository) FindByKey(ctx context.Context, key string) (*entity.Token, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByKey(ctx, key)
	}

	ck := c.cacheKey(key)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, ck).Bytes(); err == nil && len(b) > 0 {
		var t entity.Token
		if err := json.Unmarshal(b, &t); err == nil {
			return &t, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, ck).Err()
	}

	// 2) Fallback to database
	t, err := c.inner.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	c.store(ctx, t)
	return t, nil
}

// FindByID is not cached.
func (c *CachingTokenRepository) FindByID(ctx context.Context, id uint) (*entity.Token, error) {
	return c.inner.FindByID(ctx, id)
}

// DeleteExpiredBefore deletes from the database only. Cached entries never
// outlive their token's expiry, so nothing purged can still be cached.
func (c *CachingTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return c.inner.DeleteExpiredBefore(ctx, cutoff)
}

func (c *CachingTokenRepository) store(ctx context.Context, t *entity.Token) {
	if c.rdb == nil {
		return
	}
	ttl := cappedTTL(c.ttl, t.ExpiresAt, c.now())
	if ttl <= 0 {
		return
	}
	if b, err := json.Marshal(t); err == nil {
		_ = c.rdb.Set(ctx, c.cacheKey(t.Key), b, ttl).Err()
	}
}

// cacheKey generates the cache key of a token key.
func (c *CachingTokenRepository) cacheKey(key string) string {
	return c.namespace + ":" + safe(key)
}
