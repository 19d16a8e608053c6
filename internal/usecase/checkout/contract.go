package checkout

import (
	"context"

	"github.com/modestbazar/storefront/internal/domain/product"
)

// Catalog resolves products by id.
type Catalog interface {
	ProductByID(ctx context.Context, id int) (product.Product, error)
}
