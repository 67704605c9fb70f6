// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"fmt"

	"catalog_backend/internal/shared/apperror"
)

var (
	// ErrUserNotFound はユーザーが存在しない（または削除済みの）場合に返されます。
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "User not found")

	// ErrEmailAlreadyExists は削除されていない別のユーザーが同じメールアドレスを使っている場合に返されます。
	ErrEmailAlreadyExists = apperror.New(apperror.KindConflict, "Email already exists")
)

// emailConflict はクライアント向けにメールアドレスを含めた重複エラーを返します。
func emailConflict(email string) error {
	return apperror.Wrap(apperror.KindConflict,
		fmt.Sprintf("Email %s already exists, please select another one", email),
		ErrEmailAlreadyExists)
}
