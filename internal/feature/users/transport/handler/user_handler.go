// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/api"
	authmw "catalog_backend/internal/feature/auth/transport/middleware"
	"catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/feature/users/transport/http/dto"
	"catalog_backend/internal/feature/users/usecase"
	"catalog_backend/internal/shared/apperror"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UserUsecase interface {
	List(ctx context.Context, actor *entity.User) ([]entity.User, error)
	Get(ctx context.Context, actor *entity.User, id uint) (*entity.User, error)
	Create(ctx context.Context, actor *entity.User, in usecase.CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, actor *entity.User, id uint, in usecase.UpdateUserInput) error
	Delete(ctx context.Context, actor *entity.User, id uint) error
}

var (
	errNotFound       = apperror.New(apperror.KindNotFound, "Not found")
	errMalformedInput = apperror.New(apperror.KindValidation, "Invalid request body")
)

// UserHandler はユーザーのHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List は GET /v1/users/ を処理します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.List(c.Request.Context(), authmw.CurrentUser(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUsers(users))
}

// Get は GET /v1/users/:id を処理します。
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.uc.Get(c.Request.Context(), authmw.CurrentUser(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(*user))
}

// Create は POST /v1/users/ を処理します。
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(apperror.Wrap(errMalformedInput.Kind, errMalformedInput.Message, err))
		return
	}
	user, err := h.uc.Create(c.Request.Context(), authmw.CurrentUser(c), req.Input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, api.CreatedResponse{
		Code:    http.StatusCreated,
		Message: fmt.Sprintf("Created, id %d", user.ID),
		ID:      user.ID,
	})
}

// Update は PATCH /v1/users/:id と POST /v1/users/:id を処理します。
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(apperror.Wrap(errMalformedInput.Kind, errMalformedInput.Message, err))
		return
	}
	if err := h.uc.Update(c.Request.Context(), authmw.CurrentUser(c), id, req.Input()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Updated"})
}

// Delete は DELETE /v1/users/:id を処理します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), authmw.CurrentUser(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Deleted"})
}

// pathID は数値でない :id を未定義ルートと同じく 404 として扱います。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(errNotFound)
		return 0, false
	}
	return uint(id), true
}
