package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/auth/policy"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// maxLimit caps a page when only an offset is supplied.
const maxLimit = math.MaxInt32

// LogRepository abstracts the persistence layer for log entries.
// Entries are append-only: there is no update or delete.
type LogRepository interface {
	// Create appends an entry and fills its ID and Date.
	Create(ctx context.Context, e *entity.LogEntry) error

	// List returns entries matching the filter, joined with the actor's name.
	List(ctx context.Context, f entity.Filter) ([]entity.LogEntry, error)
}

// UserFinder resolves the user named by a user_id filter. Soft-deleted users
// are included: their entries stay in the log.
type UserFinder interface {
	FindByIDWithDeleted(ctx context.Context, id uint) (*userentity.User, error)
}

// ListQuery carries the raw listing parameters received from the client.
type ListQuery struct {
	Type   string
	UserID uint
	Order  string
	Limit  int
	Offset int
}

// AuditUsecase records and lists audit entries.
type AuditUsecase struct {
	repo  LogRepository
	users UserFinder
}

// NewAuditUsecase creates a new AuditUsecase.
func NewAuditUsecase(repo LogRepository, users UserFinder) *AuditUsecase {
	return &AuditUsecase{repo: repo, users: users}
}

// Record appends an entry and returns its id.
func (u *AuditUsecase) Record(ctx context.Context, actorID uint, kind entity.Kind, description string) (uint, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if actorID == 0 {
		return 0, ErrInvalidActor
	}
	e := &entity.LogEntry{Operation: description, Type: kind, UserID: actorID}
	if err := u.repo.Create(ctx, e); err != nil {
		return 0, fmt.Errorf("failed to record log entry: %w", err)
	}
	return e.ID, nil
}

// Track records an entry on a best-effort basis: a failure is logged and
// never reaches the caller, whose primary action has already succeeded.
func (u *AuditUsecase) Track(ctx context.Context, actorID uint, kind entity.Kind, description string) {
	if _, err := u.Record(ctx, actorID, kind, description); err != nil {
		log.Warn().Err(err).
			Uint("actor_id", actorID).
			Str("kind", string(kind)).
			Str("operation", description).
			Msg("audit entry not recorded")
	}
}

// List returns entries visible to actor. Admins may filter by any user;
// other users only ever see their own entries.
func (u *AuditUsecase) List(ctx context.Context, actor *userentity.User, q ListQuery) ([]entity.LogEntry, error) {
	if actor == nil {
		return nil, policy.ErrNoActor
	}

	f, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	target := q.UserID
	if target == 0 && !actor.Admin {
		target = actor.ID
	}
	if err := policy.Authorize(actor, policy.LogList, target); err != nil {
		return nil, err
	}
	if target != 0 && target != actor.ID {
		if _, err := u.users.FindByIDWithDeleted(ctx, target); err != nil {
			return nil, err
		}
	}
	f.UserID = target

	entries, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	u.Track(ctx, actor.ID, entity.KindSelect, "list logs")
	return entries, nil
}

// Kinds returns the fixed list of log kinds.
func (u *AuditUsecase) Kinds(ctx context.Context, actor *userentity.User) ([]entity.Kind, error) {
	if err := policy.Authorize(actor, policy.LogTypes, 0); err != nil {
		return nil, err
	}
	u.Track(ctx, actor.ID, entity.KindSelect, "list log types")
	return entity.Kinds(), nil
}

// buildFilter validates the raw query, reporting every invalid parameter.
func buildFilter(q ListQuery) (entity.Filter, error) {
	var invalid []string
	f := entity.Filter{Order: entity.OrderDesc, Limit: q.Limit, Offset: q.Offset}

	if q.Type != "" {
		k, ok := entity.ParseKind(q.Type)
		if !ok {
			invalid = append(invalid, "type")
		}
		f.Kind = k
	}
	switch entity.Order(q.Order) {
	case "":
	case entity.OrderAsc, entity.OrderDesc:
		f.Order = entity.Order(q.Order)
	default:
		invalid = append(invalid, "order")
	}
	if q.Limit < 0 {
		invalid = append(invalid, "limit")
	}
	if q.Offset < 0 {
		invalid = append(invalid, "offset")
	}
	if len(invalid) > 0 {
		return entity.Filter{}, apperror.Validation(invalid...)
	}

	if f.Offset > 0 && f.Limit == 0 {
		f.Limit = maxLimit
	}
	return f, nil
}
