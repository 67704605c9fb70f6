// Package middleware はトークン認証のginミドルウェアを提供します。
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	userentity "catalog_backend/internal/feature/users/domain/entity"
)

const (
	// HeaderAuthToken はクライアントがトークンを送るヘッダーです。
	HeaderAuthToken = "X-Auth-Token"
	// ContextUser は認証済みユーザーを保存するgin.Contextのキーです。
	ContextUser = "currentUser"
)

// Authenticator はトークンから所有者を解決します。
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*userentity.User, error)
}

// TokenRequired は X-Auth-Token を検証し、所有者をコンテキストに保存します。
// 失敗した場合は以降のハンドラーを実行せず、エラー描画に委ねます。
func TokenRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), c.GetHeader(HeaderAuthToken))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser はTokenRequiredが保存したユーザーを返します。未認証ならnilです。
func CurrentUser(c *gin.Context) *userentity.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*userentity.User)
	return u
}
