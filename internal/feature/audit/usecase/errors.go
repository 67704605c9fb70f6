// Package usecase implements the audit trail: recording and listing log entries.
package usecase

import "catalog_backend/internal/shared/apperror"

var (
	// ErrInvalidKind is returned when recording an entry whose kind is outside the fixed set.
	ErrInvalidKind = apperror.New(apperror.KindInternal, "invalid log kind")

	// ErrInvalidActor is returned when recording an entry without an actor.
	ErrInvalidActor = apperror.New(apperror.KindInternal, "log entry requires an actor")
)
