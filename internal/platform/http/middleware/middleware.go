// Package middleware はすべてのルートに共通のginミドルウェアを提供します。
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog_backend/internal/api"
	"catalog_backend/internal/shared/apperror"
)

const (
	// HeaderRequestID はリクエストIDの受け渡しに使うヘッダーです。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はgin.Contextに保存するリクエストIDのキーです。
	ContextRequestID = "requestID"
)

var (
	errNotFound         = apperror.New(apperror.KindNotFound, "Not found")
	errMethodNotAllowed = apperror.New(apperror.KindMethodNotAllowed, "Method Not Allowed")
)

// RequestID はクライアントが送ったリクエストIDを引き継ぎ、なければ発行します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog はリクエストごとに1行のアクセスログを出力します。
// クエリ文字列とヘッダーは出力しません（トークンを含むため）。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery はpanicを内部エラーとして記録し、エラー描画に委ねます。
// ErrorRenderer より内側に登録してください。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", c.GetString(ContextRequestID)).
			Msg("recovered from panic")
		_ = c.Error(apperror.Wrap(apperror.KindInternal, apperror.InternalMessage, fmt.Errorf("panic: %v", recovered)))
		c.Abort()
	})
}

// ErrorRenderer はハンドラーが c.Error で積んだ最後のエラーを {code, message} で返します。
// debug が true の場合は内部の詳細を " - " に続けて付加します。
func ErrorRenderer(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		render(c, debug)
	}
}

func render(c *gin.Context, debug bool) {
	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, message := apperror.Describe(err, debug)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, api.ErrorResponse{Code: status, Message: message})
}

// NoRoute は未定義のパスに 404 を返します。
func NoRoute(c *gin.Context) {
	_ = c.Error(errNotFound)
}

// NoMethod は定義済みパスへの未対応メソッドに 405 を返します。
func NoMethod(c *gin.Context) {
	_ = c.Error(errMethodNotAllowed)
}
