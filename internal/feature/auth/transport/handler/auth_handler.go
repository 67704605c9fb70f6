// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/feature/auth/transport/http/dto"
	"catalog_backend/internal/shared/apperror"
	"catalog_backend/internal/shared/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時に新しいトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.Token, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はログインAPIエンドポイントを処理します。
// - リクエストをLoginReqにバインド（JSONまたはフォーム）
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はトークンと有効期限付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		if fields := validation.InvalidFields(err); len(fields) > 0 {
			_ = c.Error(apperror.Validation(fields...))
		} else {
			_ = c.Error(apperror.Wrap(apperror.KindValidation, "Invalid request body", err))
		}
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、メールアドレスの有無は区別しない
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("login failed")
		_ = c.Error(err)
		return
	}
	log.Info().Uint("user_id", token.UserID).Str("remote_addr", c.ClientIP()).Msg("user login successful")
	c.JSON(http.StatusOK, api.TokenResponse{Token: token.Key, ExpiresAt: token.ExpiresAt.UTC()})
}
