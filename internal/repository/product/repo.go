package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/modestbazar/storefront/internal/db"
	domprod "github.com/modestbazar/storefront/internal/domain/product"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/catalog.Repository. The catalog snapshot is one
// JSON document so that catalog order survives the round trip.
type Repo struct {
	store  store
	prefix string
}

// New creates a product repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// List returns the stored catalog. A catalog never written is empty.
func (r *Repo) List(ctx context.Context) ([]domprod.Product, error) {
	data, err := r.store.Get(ctx, r.key())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []domprod.Product{}, nil
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	products, err := decodeCatalog(data)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceAll overwrites the stored catalog with products.
func (r *Repo) ReplaceAll(ctx context.Context, products []domprod.Product) error {
	data, err := encodeCatalog(products)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key(), data); err != nil {
		return fmt.Errorf("set catalog: %w", err)
	}
	return nil
}

func (r *Repo) key() string {
	return r.prefix + ":catalog:products"
}
