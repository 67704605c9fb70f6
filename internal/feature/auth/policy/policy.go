// Package policy decides whether an authenticated user may perform an operation.
//
// The rule is flat: admins may do anything; everyone else may use the open
// operations, and the self-service operations only on their own records.
package policy

import (
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// Operation names an action guarded by the policy.
type Operation string

const (
	ProductRead  Operation = "product.read"
	ProductWrite Operation = "product.write"

	UserList   Operation = "user.list"
	UserRead   Operation = "user.read"
	UserCreate Operation = "user.create"
	UserUpdate Operation = "user.update"
	UserDelete Operation = "user.delete"
	// UserGrant covers changing the admin flag of any account, including one's own.
	UserGrant Operation = "user.grant"

	LogList  Operation = "log.list"
	LogTypes Operation = "log.types"
)

var (
	// ErrForbidden is returned when the actor lacks the role or ownership required.
	ErrForbidden = apperror.New(apperror.KindForbidden, "Forbidden")

	// ErrNoActor is returned when no authenticated user is bound to the request.
	ErrNoActor = apperror.New(apperror.KindUnauthenticated, "Unauthenticated")
)

// open operations are available to every authenticated user.
var open = map[Operation]bool{
	ProductRead:  true,
	ProductWrite: true,
	LogTypes:     true,
}

// selfService operations are available to a non-admin on their own records.
var selfService = map[Operation]bool{
	UserRead:   true,
	UserUpdate: true,
	LogList:    true,
}

// Authorize allows the operation when actor is an admin, when the operation is
// open, or when it is self-service and targetID is the actor's own id.
func Authorize(actor *userentity.User, op Operation, targetID uint) error {
	if actor == nil {
		return ErrNoActor
	}
	if actor.Admin || open[op] {
		return nil
	}
	if selfService[op] && targetID == actor.ID {
		return nil
	}
	return ErrForbidden
}
