package usecase

import (
	"context"
	"time"

	auditentity "catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/auth/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

var errUserNotFound = apperror.New(apperror.KindNotFound, "User not found")

// mockUserFinder is a mock implementation of UserFinder.
type mockUserFinder struct {
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*userentity.User, error)
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*userentity.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id uint) (*userentity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default: return user not found error
	return nil, errUserNotFound
}

func (m *mockUserFinder) FindByEmail(ctx context.Context, email string) (*userentity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, errUserNotFound
}

// mockTokenRepository keeps tokens in memory, indexed by key.
type mockTokenRepository struct {
	byKey     map[string]*entity.Token
	CreateErr error
	FindErr   error
	cutoff    time.Time
}

func newMockTokenRepository() *mockTokenRepository {
	return &mockTokenRepository{byKey: map[string]*entity.Token{}}
}

func (m *mockTokenRepository) Create(ctx context.Context, t *entity.Token) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.byKey[t.Key]; ok {
		return ErrTokenKeyCollision
	}
	t.ID = uint(len(m.byKey) + 1)
	cp := *t
	m.byKey[t.Key] = &cp
	return nil
}

func (m *mockTokenRepository) FindByKey(ctx context.Context, key string) (*entity.Token, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	t, ok := m.byKey[key]
	if !ok {
		return nil, ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTokenRepository) FindByID(ctx context.Context, id uint) (*entity.Token, error) {
	for _, t := range m.byKey {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrTokenNotFound
}

func (m *mockTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.cutoff = cutoff
	var n int64
	for k, t := range m.byKey {
		if t.ExpiresAt.Before(cutoff) {
			delete(m.byKey, k)
			n++
		}
	}
	return n, nil
}

type trackedEntry struct {
	ActorID     uint
	Kind        auditentity.Kind
	Description string
}

// mockAuditTrail records every tracked entry.
type mockAuditTrail struct {
	entries []trackedEntry
}

func (m *mockAuditTrail) Track(ctx context.Context, actorID uint, kind auditentity.Kind, description string) {
	m.entries = append(m.entries, trackedEntry{actorID, kind, description})
}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
