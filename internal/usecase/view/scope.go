package view

import (
	"context"
	"fmt"

	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
)

// Stores resolves the store a scoped page belongs to.
type Stores interface {
	BySlug(ctx context.Context, slug string) (domstore.Store, error)
}

// Scope is a resolved product scope together with what a page may show of it.
type Scope struct {
	Kind       Kind
	Products   []product.Product
	Visibility filter.Visibility
	Store      *domstore.Store
}

// ResolveScope returns the whole catalog for an empty slug, otherwise the
// products and visible sections of the store with that slug.
func ResolveScope(ctx context.Context, products Products, stores Stores, slug string) (Scope, error) {
	if slug == "" {
		all, err := products.AllProducts(ctx)
		if err != nil {
			return Scope{}, fmt.Errorf("resolve catalog scope: %w", err)
		}
		return Scope{Kind: KindCatalog, Products: all}, nil
	}
	st, err := stores.BySlug(ctx, slug)
	if err != nil {
		return Scope{}, fmt.Errorf("resolve store scope: %w", err)
	}
	scoped, err := products.ProductsForStore(ctx, st.Name)
	if err != nil {
		return Scope{}, fmt.Errorf("resolve store scope %q: %w", slug, err)
	}
	return Scope{
		Kind:       KindStore,
		Products:   scoped,
		Visibility: filter.NewVisibility(st.VisibleFilters),
		Store:      &st,
	}, nil
}

// Options returns the view options matching the scope.
func (s Scope) Options() []Option {
	return []Option{WithKind(s.Kind), WithVisibility(s.Visibility)}
}
