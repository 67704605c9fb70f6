// Package adapters はproductsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog_backend/internal/feature/products/domain/entity"
	"catalog_backend/internal/feature/products/usecase"
)

type productGorm struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductRepository はGORMを使ったProductRepositoryを生成します。
func NewProductRepository(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productGorm) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productGorm) List(ctx context.Context) ([]entity.Product, error) {
	products := []entity.Product{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update は在庫0のようなゼロ値も書き込むため、列を明示して更新します。
func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Select("name", "price_cents", "stock").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func (r *productGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}
