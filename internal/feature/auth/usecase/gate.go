package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	auditentity "catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/auth/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// TokenResolver is the subset of TokenManager the gate depends on.
type TokenResolver interface {
	ResolveKey(ctx context.Context, key string) (*entity.Token, error)
	IsExpired(t *entity.Token) bool
	OwnerOf(ctx context.Context, t *entity.Token) (*userentity.User, error)
}

// AuditTrail records successful actions on a best-effort basis.
type AuditTrail interface {
	Track(ctx context.Context, actorID uint, kind auditentity.Kind, description string)
}

// Gate turns the token presented with a request into an authenticated user.
type Gate struct {
	tokens TokenResolver
	audit  AuditTrail
}

// NewGate creates a Gate.
func NewGate(tokens TokenResolver, audit AuditTrail) *Gate {
	return &Gate{tokens: tokens, audit: audit}
}

// Authenticate resolves key to its owner. It fails with ErrUnauthenticated when
// the key is empty, unknown or its owner is gone, and with ErrTokenExpired when
// the token is past its expiry. On success an interact entry is recorded.
func (g *Gate) Authenticate(ctx context.Context, key string) (*userentity.User, error) {
	if key == "" {
		return nil, ErrUnauthenticated
	}
	t, err := g.tokens.ResolveKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if g.tokens.IsExpired(t) {
		return nil, ErrTokenExpired
	}
	user, err := g.tokens.OwnerOf(ctx, t)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			log.Warn().Uint("token_id", t.ID).Uint("user_id", t.UserID).Msg("token owner no longer exists")
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	g.audit.Track(ctx, user.ID, auditentity.KindInteract, "authenticated on API")
	return user, nil
}
