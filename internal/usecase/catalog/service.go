// Package catalog serves the read-only product catalog snapshot.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/domain"
	"github.com/modestbazar/storefront/internal/domain/product"
	"github.com/modestbazar/storefront/internal/metrics"
)

type snapshot struct {
	products []product.Product
	index    product.Index
}

// Service holds the validated catalog snapshot loaded from the repository.
// Readers get copies; the snapshot itself is replaced whole on Load or Seed.
type Service struct {
	repo   Repository
	logger *zap.Logger

	mu   sync.RWMutex
	snap snapshot
}

// New creates a catalog service. Call Load or Seed before serving reads.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Load reads every product from the repository, validates the snapshot and
// makes it current.
func (s *Service) Load(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := product.ValidateCatalog(products); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.swap(products)
	s.logger.Info("Catalog loaded", zap.Int("products", len(products)))
	return nil
}

// Seed validates products, writes them to the repository and makes them current.
func (s *Service) Seed(ctx context.Context, products []product.Product) error {
	if err := product.ValidateCatalog(products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.swap(products)
	s.logger.Info("Catalog seeded", zap.Int("products", len(products)))
	return nil
}

// AllProducts returns every product in catalog order.
func (s *Service) AllProducts(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, len(s.snap.products))
	copy(out, s.snap.products)
	return out, nil
}

// ProductsForStore returns the products whose brand equals storeName, in catalog order.
func (s *Service) ProductsForStore(_ context.Context, storeName string) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, 0)
	for i := range s.snap.products {
		if s.snap.products[i].Brand == storeName {
			out = append(out, s.snap.products[i])
		}
	}
	return out, nil
}

// ProductByID returns one product.
func (s *Service) ProductByID(_ context.Context, id int) (product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.snap.index[id]
	if !ok {
		return product.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return s.snap.products[i], nil
}

// Count returns the number of products in the snapshot.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snap.products)
}

// HealthCheck fails when no catalog has been loaded.
func (s *Service) HealthCheck(_ context.Context) error {
	if s.Count() == 0 {
		return fmt.Errorf("catalog: %w", domain.ErrNotFound)
	}
	return nil
}

func (s *Service) swap(products []product.Product) {
	cp := make([]product.Product, len(products))
	copy(cp, products)
	s.mu.Lock()
	s.snap = snapshot{products: cp, index: product.NewIndex(cp)}
	s.mu.Unlock()
	metrics.CatalogProducts.Set(float64(len(cp)))
}
