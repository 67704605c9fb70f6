package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"catalog_backend/internal/feature/auth/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// TokenManager issues tokens and resolves them back to their owners.
type TokenManager struct {
	tokens TokenRepository
	users  UserFinder
	now    func() time.Time
	newKey func() string
}

// NewTokenManager creates a TokenManager backed by the given repositories.
func NewTokenManager(tokens TokenRepository, users UserFinder) *TokenManager {
	return &TokenManager{
		tokens: tokens,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
		newKey: uuid.NewString,
	}
}

// WithClock overrides the time source. Used by tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue creates a token for user valid for entity.Lifetime.
// A key collision is reported as an error and never retried.
func (m *TokenManager) Issue(ctx context.Context, user *userentity.User) (*entity.Token, error) {
	if user == nil || user.ID == 0 {
		return nil, errors.New("cannot issue a token without an owner")
	}
	now := m.now()
	t := &entity.Token{
		Key:       m.newKey(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(entity.Lifetime),
	}
	if err := m.tokens.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	return t, nil
}

// Resolve looks up a token by key when the input is UUID-shaped, or by id
// when it is a positive integer.
func (m *TokenManager) Resolve(ctx context.Context, keyOrID string) (*entity.Token, error) {
	if _, err := uuid.Parse(keyOrID); err == nil {
		return m.tokens.FindByKey(ctx, keyOrID)
	}
	id, err := strconv.ParseUint(keyOrID, 10, 32)
	if err != nil || id == 0 {
		return nil, ErrTokenNotFound
	}
	return m.tokens.FindByID(ctx, uint(id))
}

// ResolveKey looks up a token by its key only.
func (m *TokenManager) ResolveKey(ctx context.Context, key string) (*entity.Token, error) {
	if key == "" {
		return nil, ErrTokenNotFound
	}
	return m.tokens.FindByKey(ctx, key)
}

// IsExpired reports whether t is past its expiry according to the manager's clock.
func (m *TokenManager) IsExpired(t *entity.Token) bool {
	return t.IsExpiredAt(m.now())
}

// OwnerOf returns the user bound to t. A deleted owner yields a NotFound error.
func (m *TokenManager) OwnerOf(ctx context.Context, t *entity.Token) (*userentity.User, error) {
	u, err := m.users.FindByID(ctx, t.UserID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}
	return u, nil
}

// PurgeExpired deletes tokens that expired more than retention ago.
func (m *TokenManager) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention < 0 {
		retention = 0
	}
	n, err := m.tokens.DeleteExpiredBefore(ctx, m.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to purge tokens: %w", err)
	}
	return n, nil
}
