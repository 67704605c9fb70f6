// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/feature/users/usecase"
	"catalog_backend/internal/shared/dberr"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// 削除はgorm.DeletedAtによる論理削除で、以降の検索からは除外されます。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByIDWithDeleted は論理削除済みのユーザーも含めてIDで取得します。
// 監査ログの絞り込みのように、削除後も履歴を参照する場合に使います。
func (r *userGorm) FindByIDWithDeleted(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List はユーザーをID順で返します。
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	users := []entity.User{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update は変更可能な列をゼロ値も含めて保存します。
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	res := r.db.WithContext(ctx).
		Model(u).
		Select("name", "email", "password", "admin").
		Updates(u)
	if res.Error != nil {
		if dberr.IsUniqueViolation(res.Error) {
			return usecase.ErrEmailAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete はユーザーを論理削除します。
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ExistsByEmail はexcludeID以外の削除されていないユーザーがemailを使っているか返します。
func (r *userGorm) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
