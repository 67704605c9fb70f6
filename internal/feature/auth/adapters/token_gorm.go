// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/feature/auth/usecase"
	"catalog_backend/internal/shared/dberr"
)

// tokenGorm is a GORM implementation of the TokenRepository interface.
type tokenGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure tokenGorm implements TokenRepository.
var _ usecase.TokenRepository = (*tokenGorm)(nil)

// NewTokenRepository creates a new instance of tokenGorm.
func NewTokenRepository(db *gorm.DB) *tokenGorm {
	return &tokenGorm{db: db}
}

// Create persists a new token. The unique index on token_key makes a
// duplicate key fail atomically.
func (r *tokenGorm) Create(ctx context.Context, t *entity.Token) error {
	model := TokenModelFromEntity(t)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return usecase.ErrTokenKeyCollision
		}
		return err
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	return nil
}

// FindByKey retrieves a token by its key.
func (r *tokenGorm) FindByKey(ctx context.Context, key string) (*entity.Token, error) {
	return r.first(ctx, "token_key = ?", key)
}

// FindByID retrieves a token by its id.
func (r *tokenGorm) FindByID(ctx context.Context, id uint) (*entity.Token, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *tokenGorm) first(ctx context.Context, query string, arg any) (*entity.Token, error) {
	var model TokenModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteExpiredBefore removes every token that expired before cutoff.
func (r *tokenGorm) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&TokenModel{})
	return result.RowsAffected, result.Error
}
