package catalog

import (
	"context"

	"github.com/modestbazar/storefront/internal/domain/product"
)

// Repository defines the storage contract for catalog products.
type Repository interface {
	List(ctx context.Context) ([]product.Product, error)
	ReplaceAll(ctx context.Context, products []product.Product) error
}
