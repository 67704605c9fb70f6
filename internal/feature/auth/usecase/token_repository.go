package usecase

import (
	"context"
	"time"

	"catalog_backend/internal/feature/auth/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
)

// TokenRepository abstracts the persistence layer for token entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TokenRepository interface {
	// Create persists a new token. A duplicate key yields ErrTokenKeyCollision.
	Create(ctx context.Context, t *entity.Token) error

	// FindByKey retrieves a token by its secret key, or ErrTokenNotFound.
	FindByKey(ctx context.Context, key string) (*entity.Token, error)

	// FindByID retrieves a token by its numeric id, or ErrTokenNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Token, error)

	// DeleteExpiredBefore removes tokens whose expiry is before cutoff.
	// Returns the number of deleted tokens.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserFinder looks up the owners of tokens and credentials.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*userentity.User, error)
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)
}
