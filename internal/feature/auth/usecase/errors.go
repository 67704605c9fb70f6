// Package usecase implements the business logic for the auth feature:
// credential checks, token issuance and per-request identity resolution.
package usecase

import "catalog_backend/internal/shared/apperror"

var (
	// ErrUnauthenticated is returned when no valid token accompanies a request.
	ErrUnauthenticated = apperror.New(apperror.KindUnauthenticated, "Unauthenticated")

	// ErrTokenExpired is returned when a known token is presented after its expiry.
	ErrTokenExpired = apperror.New(apperror.KindTokenExpired, "Token expired")

	// ErrTokenNotFound is returned when no token matches the given key or id.
	ErrTokenNotFound = apperror.New(apperror.KindUnauthenticated, "Token not found")

	// ErrTokenKeyCollision is returned when a freshly generated key already exists.
	ErrTokenKeyCollision = apperror.New(apperror.KindInternal, "token key collision")

	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthenticated, "Invalid email or password")
)
