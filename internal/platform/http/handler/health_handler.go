// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog_backend/internal/api"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// db が nil でなければ疎通確認を行い、失敗時は 503 を返します。
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		status := http.StatusOK
		body := gin.H{"status": "ok"}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				log.Error().Err(err).Msg("health check: database unreachable")
				status = http.StatusServiceUnavailable
				body = gin.H{"status": "unavailable"}
			}
		}

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(status)
		default:
			c.JSON(status, body)
		}
	}
}

// Ping handles GET /v1/ping/ and reports the server time.
func Ping(now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, api.MessageResponse{Message: fmt.Sprintf("Pong in %d", now().Unix())})
	}
}
