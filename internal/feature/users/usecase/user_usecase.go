package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	auditentity "catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/auth/policy"
	"catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/validation"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// メールアドレスが重複する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, u *entity.User) error

	// FindByID は削除されていないユーザーを取得します。存在しない場合はErrUserNotFoundです。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail は削除されていないユーザーをメールアドレスで取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List は削除されていないユーザーをID順で返します。
	List(ctx context.Context) ([]entity.User, error)

	// Update は名前・メールアドレス・パスワード・管理者フラグを保存します。
	Update(ctx context.Context, u *entity.User) error

	// Delete はユーザーを論理削除します。存在しない場合はErrUserNotFoundです。
	Delete(ctx context.Context, id uint) error

	// ExistsByEmail はexcludeID以外の削除されていないユーザーがemailを使っているか返します。
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// PasswordHasher は平文パスワードをハッシュ化します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// AuditTrail は成功した操作を監査ログに記録します。失敗は呼び出し元に返しません。
type AuditTrail interface {
	Track(ctx context.Context, actorID uint, kind auditentity.Kind, description string)
}

// CreateUserInput はユーザー作成の入力です。
// 管理者フラグは "true" や "1" などの文字列で、空文字は false です。
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Admin    string `json:"admin" validate:"omitempty,boolean"`
}

// UpdateUserInput は部分更新の入力です。nilのフィールドは変更しません。
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password"`
	Admin    *string `json:"admin" validate:"omitnil,boolean"`
}

// UserUsecase はユーザーの参照・作成・更新・削除を行います。
type UserUsecase struct {
	users    UserRepository
	hasher   PasswordHasher
	audit    AuditTrail
	validate *validation.Validator
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, hasher PasswordHasher, audit AuditTrail) *UserUsecase {
	return &UserUsecase{
		users:    users,
		hasher:   hasher,
		audit:    audit,
		validate: validation.New(),
	}
}

// List はすべてのユーザーを返します。管理者のみ実行できます。
func (u *UserUsecase) List(ctx context.Context, actor *entity.User) ([]entity.User, error) {
	if err := policy.Authorize(actor, policy.UserList, 0); err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindSelect, "list users")
	return users, nil
}

// Get はユーザーを1件返します。管理者以外は自分自身のみ参照できます。
func (u *UserUsecase) Get(ctx context.Context, actor *entity.User, id uint) (*entity.User, error) {
	if err := policy.Authorize(actor, policy.UserRead, id); err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindSelect, fmt.Sprintf("select user %d", id))
	return user, nil
}

// Create はユーザーを作成します。管理者のみ実行できます。
func (u *UserUsecase) Create(ctx context.Context, actor *entity.User, in CreateUserInput) (*entity.User, error) {
	if err := policy.Authorize(actor, policy.UserCreate, 0); err != nil {
		return nil, err
	}
	user, err := u.create(ctx, in)
	if err != nil {
		return nil, err
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindInsert, fmt.Sprintf("insert user %d", user.ID))
	return user, nil
}

// Bootstrap はインストール時に最初の管理者を作成します。
// 同じメールアドレスのユーザーが既にいる場合はそのユーザーを返し、createdはfalseです。
func (u *UserUsecase) Bootstrap(ctx context.Context, in CreateUserInput) (user *entity.User, created bool, err error) {
	existing, err := u.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	in.Admin = "true"
	user, err = u.create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	u.audit.Track(ctx, user.ID, auditentity.KindInsert, fmt.Sprintf("install admin user %d", user.ID))
	return user, true, nil
}

func (u *UserUsecase) create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, err
	}
	taken, err := u.users.ExistsByEmail(ctx, in.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, emailConflict(in.Email)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: in.Name, Email: in.Email, Password: hashed, Admin: flag(in.Admin)}
	if err := u.users.Create(ctx, user); err != nil {
		// 同時に作成された場合はユニーク制約で検出される
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, emailConflict(in.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update はユーザーを部分更新します。管理者以外は自分自身のみ更新でき、
// 管理者フラグは変更できません。
func (u *UserUsecase) Update(ctx context.Context, actor *entity.User, id uint, in UpdateUserInput) error {
	if err := policy.Authorize(actor, policy.UserUpdate, id); err != nil {
		return err
	}
	if err := u.validate.Struct(in); err != nil {
		return err
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if in.Admin != nil && flag(*in.Admin) != user.Admin {
		if err := policy.Authorize(actor, policy.UserGrant, id); err != nil {
			return err
		}
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := u.users.ExistsByEmail(ctx, *in.Email, id)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return emailConflict(*in.Email)
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}
	if in.Admin != nil {
		user.Admin = flag(*in.Admin)
	}

	if err := u.users.Update(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return emailConflict(user.Email)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindUpdate, fmt.Sprintf("update user %d", id))
	return nil
}

// Delete はユーザーを論理削除します。管理者のみ実行できます。
func (u *UserUsecase) Delete(ctx context.Context, actor *entity.User, id uint) error {
	if err := policy.Authorize(actor, policy.UserDelete, id); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindDelete, fmt.Sprintf("delete user %d", id))
	return nil
}

// flag は検証済みの真偽値文字列を解釈します。空文字はfalseです。
func flag(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
