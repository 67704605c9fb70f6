// Package handler はproductsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/api"
	authmw "catalog_backend/internal/feature/auth/transport/middleware"
	"catalog_backend/internal/feature/products/domain/entity"
	"catalog_backend/internal/feature/products/transport/http/dto"
	"catalog_backend/internal/feature/products/usecase"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
)

// ProductUsecase は商品操作のユースケースを定義します。
type ProductUsecase interface {
	List(ctx context.Context, actor *userentity.User) ([]entity.Product, error)
	Get(ctx context.Context, actor *userentity.User, id uint) (*entity.Product, error)
	Create(ctx context.Context, actor *userentity.User, in usecase.CreateProductInput) (*entity.Product, error)
	Update(ctx context.Context, actor *userentity.User, id uint, in usecase.UpdateProductInput) error
	Delete(ctx context.Context, actor *userentity.User, id uint) error
}

var errNotFound = apperror.New(apperror.KindNotFound, "Not found")

// ProductHandler は商品のHTTPリクエストを処理します。
type ProductHandler struct {
	uc ProductUsecase
}

// NewProductHandler はProductHandlerの新しいインスタンスを生成します。
func NewProductHandler(uc ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List は GET /v1/products/ を処理します。
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.uc.List(c.Request.Context(), authmw.CurrentUser(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProducts(products))
}

// Get は GET /v1/products/:id を処理します。
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.uc.Get(c.Request.Context(), authmw.CurrentUser(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(*p))
}

// Create は POST /v1/products/ を処理します。
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(apperror.Wrap(apperror.KindValidation, "Invalid request body", err))
		return
	}
	p, err := h.uc.Create(c.Request.Context(), authmw.CurrentUser(c), req.CreateInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, api.CreatedResponse{
		Code:    http.StatusCreated,
		Message: fmt.Sprintf("Created, id %d", p.ID),
		ID:      p.ID,
	})
}

// Update は PATCH /v1/products/:id を処理します。
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(apperror.Wrap(apperror.KindValidation, "Invalid request body", err))
		return
	}
	if err := h.uc.Update(c.Request.Context(), authmw.CurrentUser(c), id, req.UpdateInput()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Updated"})
}

// Delete は DELETE /v1/products/:id を処理します。
func (h *ProductHandler) Delete(c *gin.Context) {
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

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(errNotFound)
		return 0, false
	}
	return uint(id), true
}
