package recommend

import (
	"context"
	"fmt"

	"github.com/modestbazar/storefront/internal/domain/product"
)

// Catalog is the read side of the catalog the service recommends from.
type Catalog interface {
	AllProducts(ctx context.Context) ([]product.Product, error)
	ProductByID(ctx context.Context, id int) (product.Product, error)
}

// Recommendations groups both lookups for one product page.
type Recommendations struct {
	Styling []product.Product `json:"styling"`
	Similar []product.Product `json:"similar"`
}

// Service resolves products by id and runs the engine over the current catalog.
type Service struct {
	catalog      Catalog
	similarLimit int
}

// NewService creates a recommendation service. similarLimit is used when a
// request carries no limit.
func NewService(catalog Catalog, similarLimit int) *Service {
	if similarLimit <= 0 {
		similarLimit = DefaultSimilarLimit
	}
	return &Service{catalog: catalog, similarLimit: similarLimit}
}

// For returns styling and similar products for product id.
func (s *Service) For(ctx context.Context, id, limit int) (Recommendations, error) {
	p, err := s.catalog.ProductByID(ctx, id)
	if err != nil {
		return Recommendations{}, fmt.Errorf("recommend: %w", err)
	}
	all, err := s.catalog.AllProducts(ctx)
	if err != nil {
		return Recommendations{}, fmt.Errorf("recommend: %w", err)
	}
	if limit <= 0 {
		limit = s.similarLimit
	}
	e := NewEngine(all)
	return Recommendations{
		Styling: e.StylingFor(&p),
		Similar: e.SimilarTo(&p, limit),
	}, nil
}
