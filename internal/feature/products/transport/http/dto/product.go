// Package dto はproductsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/products/domain/entity"
	"catalog_backend/internal/feature/products/usecase"
)

// ProductRequest は作成と更新で共通のリクエストボディです。
// 値は型を問わず文字列として受け取り、検証はユースケースで行います。
// 更新時は空文字と未指定のフィールドを変更しません。
type ProductRequest struct {
	Name  api.Scalar `json:"name" form:"name"`
	Price api.Scalar `json:"price" form:"price"`
	Stock api.Scalar `json:"stock" form:"stock"`
}

// CreateInput は作成用の入力に変換します。
func (r ProductRequest) CreateInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{Name: r.Name.String(), Price: r.Price.String(), Stock: r.Stock.NonEmpty()}
}

// UpdateInput は部分更新用の入力に変換します。
func (r ProductRequest) UpdateInput() usecase.UpdateProductInput {
	return usecase.UpdateProductInput{Name: r.Name.NonEmpty(), Price: r.Price.NonEmpty(), Stock: r.Stock.NonEmpty()}
}

// ProductResponse は商品の表現です。価格は小数2桁の文字列です。
type ProductResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromProduct はエンティティをレスポンスに変換します。
func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price(),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

// FromProducts は一覧を変換します。空でも [] を返します。
func FromProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
