package usecase

import (
	"context"
	"fmt"

	auditentity "catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/auth/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// dummyHash is compared when the email is unknown so that the response time
// does not reveal whether an account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(plain, hash string) bool
}

// TokenIssuer issues tokens for authenticated users.
type TokenIssuer interface {
	Issue(ctx context.Context, user *userentity.User) (*entity.Token, error)
}

// AuthUsecase implements the login flow.
type AuthUsecase struct {
	users    UserFinder
	verifier PasswordVerifier
	tokens   TokenIssuer
	audit    AuditTrail
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserFinder, verifier PasswordVerifier, tokens TokenIssuer, audit AuditTrail) *AuthUsecase {
	return &AuthUsecase{users: users, verifier: verifier, tokens: tokens, audit: audit}
}

// Authenticate returns the user whose email and password match.
// The password is always compared, even when the email is unknown.
func (u *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*userentity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash := dummyHash
	if err == nil {
		hash = user.Password
	}
	matched := u.verifier.Verify(password, hash)

	if err != nil || !matched {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the credentials and issues a fresh token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.Token, error) {
	user, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	t, err := u.tokens.Issue(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	u.audit.Track(ctx, user.ID, auditentity.KindInteract, "logged in")
	return t, nil
}
