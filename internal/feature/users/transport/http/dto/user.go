// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/feature/users/usecase"
)

// CreateUserRequest は POST /v1/users/ のリクエストボディです。JSONとフォームの両方を受け付けます。
// 値は型を問わず文字列として受け取り、検証はユースケースで行います。
type CreateUserRequest struct {
	Name     api.Scalar `json:"name" form:"name"`
	Email    api.Scalar `json:"email" form:"email"`
	Password api.Scalar `json:"password" form:"password"`
	Admin    api.Scalar `json:"admin" form:"admin"`
}

// Input はユースケースの入力に変換します。
func (r CreateUserRequest) Input() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:     r.Name.String(),
		Email:    r.Email.String(),
		Password: r.Password.String(),
		Admin:    r.Admin.String(),
	}
}

// UpdateUserRequest は PATCH /v1/users/:id のリクエストボディです。
// 空文字のフィールドは指定なしとして扱います。
type UpdateUserRequest struct {
	Name     api.Scalar `json:"name" form:"name"`
	Email    api.Scalar `json:"email" form:"email"`
	Password api.Scalar `json:"password" form:"password"`
	Admin    api.Scalar `json:"admin" form:"admin"`
}

// Input はユースケースの入力に変換します。
func (r UpdateUserRequest) Input() usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		Name:     r.Name.NonEmpty(),
		Email:    r.Email.NonEmpty(),
		Password: r.Password.NonEmpty(),
		Admin:    r.Admin.NonEmpty(),
	}
}

// UserResponse はユーザーの表現です。パスワードは常に伏せ字です。
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromUser はエンティティをレスポンスに変換します。
func FromUser(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  entity.MaskedPassword,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

// FromUsers は一覧を変換します。空でも [] を返します。
func FromUsers(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
