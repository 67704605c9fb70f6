// Package handler はauditフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/audit/transport/http/dto"
	"catalog_backend/internal/feature/audit/usecase"
	authmw "catalog_backend/internal/feature/auth/transport/middleware"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// AuditUsecase はログ参照のユースケースを定義します。
type AuditUsecase interface {
	List(ctx context.Context, actor *userentity.User, q usecase.ListQuery) ([]entity.LogEntry, error)
	Kinds(ctx context.Context, actor *userentity.User) ([]entity.Kind, error)
}

// LogHandler はログ参照のHTTPリクエストを処理します。
type LogHandler struct {
	uc AuditUsecase
}

// NewLogHandler はLogHandlerの新しいインスタンスを生成します。
func NewLogHandler(uc AuditUsecase) *LogHandler {
	return &LogHandler{uc: uc}
}

// List はログを一覧します。
//
// GET /v1/logs/?type=update&user_id=2&order=asc&limit=20&offset=40
func (h *LogHandler) List(c *gin.Context) {
	q, err := bindListQuery(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	entries, err := h.uc.List(c.Request.Context(), authmw.CurrentUser(c), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntries(entries))
}

// Types はログ種別の一覧を返します。
//
// GET /v1/logs/types/
func (h *LogHandler) Types(c *gin.Context) {
	kinds, err := h.uc.Kinds(c.Request.Context(), authmw.CurrentUser(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, kinds)
}

// bindListQuery は任意のクエリパラメータを型付きで取り出します。
// 型が合わないパラメータはまとめて報告します。
func bindListQuery(values url.Values) (usecase.ListQuery, error) {
	var (
		typ, order    *string
		userID        *uint
		limit, offset *int
		invalid       []string
	)
	bind := func(name string, dest any) {
		if err := runtime.BindQueryParameter("form", true, false, name, values, dest); err != nil {
			invalid = append(invalid, name)
		}
	}
	bind("type", &typ)
	bind("user_id", &userID)
	bind("order", &order)
	bind("limit", &limit)
	bind("offset", &offset)
	if len(invalid) > 0 {
		return usecase.ListQuery{}, apperror.Validation(invalid...)
	}

	var q usecase.ListQuery
	if typ != nil {
		q.Type = *typ
	}
	if userID != nil {
		q.UserID = *userID
	}
	if order != nil {
		q.Order = *order
	}
	if limit != nil {
		q.Limit = *limit
	}
	if offset != nil {
		q.Offset = *offset
	}
	return q, nil
}
