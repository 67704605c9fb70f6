// Package usecase はproductsフィーチャーのビジネスロジックを実装します。
package usecase

import "catalog_backend/internal/shared/apperror"

// ErrProductNotFound は商品が存在しない場合に返されます。
var ErrProductNotFound = apperror.New(apperror.KindNotFound, "Product not found")
