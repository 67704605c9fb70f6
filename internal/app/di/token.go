package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "catalog_backend/internal/feature/auth/adapters"
	"catalog_backend/internal/feature/auth/usecase"
	"catalog_backend/internal/platform/cache"
)

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, key lookups go through a Redis read-through cache.
// Otherwise, the database is queried directly.
func NewTokenRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.TokenRepository {
	repo := authadapters.NewTokenRepository(db)
	if rdb != nil {
		return cache.NewCachingTokenRepository(rdb, ttl, repo, "tokens")
	}
	return repo
}
