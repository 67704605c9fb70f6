package usecase

import (
	"context"
	"fmt"
	"sort"

	auditentity "catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/auth/policy"
	"catalog_backend/internal/feature/products/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
	"catalog_backend/internal/shared/apperror"
	"catalog_backend/internal/shared/validation"
)

// ProductRepository は商品の永続化層を抽象化します。
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	// FindByID は商品を取得します。存在しない場合はErrProductNotFoundです。
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	// List は商品をID順で返します。
	List(ctx context.Context) ([]entity.Product, error)
	// Update は名前・価格・在庫をゼロ値も含めて保存します。
	Update(ctx context.Context, p *entity.Product) error
	// Delete は商品を物理削除します。存在しない場合はErrProductNotFoundです。
	Delete(ctx context.Context, id uint) error
}

// AuditTrail は成功した操作を監査ログに記録します。
type AuditTrail interface {
	Track(ctx context.Context, actorID uint, kind auditentity.Kind, description string)
}

// CreateProductInput は商品作成の入力です。価格は "2.26" 形式、在庫は "79" 形式の文字列です。
// 型の誤りも検証エラーとしてまとめて報告するため、数値も文字列のまま受け取ります。
type CreateProductInput struct {
	Name  string  `json:"name" validate:"required"`
	Price string  `json:"price" validate:"required,money"`
	Stock *string `json:"stock" validate:"required,count"`
}

// UpdateProductInput は部分更新の入力です。nilのフィールドは変更しません。
// 在庫は0を含め、指定された値で上書きします。
type UpdateProductInput struct {
	Name  *string `json:"name"`
	Price *string `json:"price" validate:"omitnil,money"`
	Stock *string `json:"stock" validate:"omitnil,count"`
}

// StockReport は在庫切れと在庫ありに分けた商品一覧です。
type StockReport struct {
	OutOfStock []entity.Product
	// InStock は在庫の少ない順です。
	InStock []entity.Product
}

// ProductUsecase は商品の参照・作成・更新・削除を行います。
type ProductUsecase struct {
	products ProductRepository
	audit    AuditTrail
	validate *validation.Validator
}

// NewProductUsecase はProductUsecaseの新しいインスタンスを生成します。
func NewProductUsecase(products ProductRepository, audit AuditTrail) *ProductUsecase {
	return &ProductUsecase{products: products, audit: audit, validate: validation.New()}
}

// List はすべての商品を返します。
func (u *ProductUsecase) List(ctx context.Context, actor *userentity.User) ([]entity.Product, error) {
	if err := policy.Authorize(actor, policy.ProductRead, 0); err != nil {
		return nil, err
	}
	products, err := u.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindSelect, "list products")
	return products, nil
}

// Get は商品を1件返します。
func (u *ProductUsecase) Get(ctx context.Context, actor *userentity.User, id uint) (*entity.Product, error) {
	if err := policy.Authorize(actor, policy.ProductRead, id); err != nil {
		return nil, err
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindSelect, fmt.Sprintf("select product %d", id))
	return p, nil
}

// Create は商品を作成します。
func (u *ProductUsecase) Create(ctx context.Context, actor *userentity.User, in CreateProductInput) (*entity.Product, error) {
	if err := policy.Authorize(actor, policy.ProductWrite, 0); err != nil {
		return nil, err
	}
	if err := u.validate.Struct(in); err != nil {
		return nil, err
	}
	cents, err := entity.ParsePrice(in.Price)
	if err != nil {
		return nil, apperror.Validation("price")
	}

	stock, err := validation.ParseCount(*in.Stock)
	if err != nil {
		return nil, apperror.Validation("stock")
	}

	p := &entity.Product{Name: in.Name, PriceCents: cents, Stock: stock}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindInsert, fmt.Sprintf("insert product %d", p.ID))
	return p, nil
}

// Update は商品を部分更新します。
func (u *ProductUsecase) Update(ctx context.Context, actor *userentity.User, id uint, in UpdateProductInput) error {
	if err := policy.Authorize(actor, policy.ProductWrite, id); err != nil {
		return err
	}
	if err := u.validate.Struct(in); err != nil {
		return err
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		cents, err := entity.ParsePrice(*in.Price)
		if err != nil {
			return apperror.Validation("price")
		}
		p.PriceCents = cents
	}
	if in.Stock != nil {
		stock, err := validation.ParseCount(*in.Stock)
		if err != nil {
			return apperror.Validation("stock")
		}
		p.Stock = stock
	}

	if err := u.products.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindUpdate, fmt.Sprintf("update product %d", id))
	return nil
}

// Delete は商品を削除します。
func (u *ProductUsecase) Delete(ctx context.Context, actor *userentity.User, id uint) error {
	if err := policy.Authorize(actor, policy.ProductWrite, id); err != nil {
		return err
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.Track(ctx, actor.ID, auditentity.KindDelete, fmt.Sprintf("delete product %d", id))
	return nil
}

// Report は在庫レポートを作成します。管理CLIから呼ばれるため監査対象外です。
func (u *ProductUsecase) Report(ctx context.Context) (StockReport, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return StockReport{}, fmt.Errorf("failed to list products: %w", err)
	}
	r := StockReport{OutOfStock: []entity.Product{}, InStock: []entity.Product{}}
	for _, p := range products {
		if p.InStock() {
			r.InStock = append(r.InStock, p)
		} else {
			r.OutOfStock = append(r.OutOfStock, p)
		}
	}
	sort.SliceStable(r.InStock, func(i, j int) bool {
		return r.InStock[i].Stock < r.InStock[j].Stock
	})
	return r, nil
}
