package product

import (
	"fmt"
	"math"

	"github.com/modestbazar/storefront/internal/domain"
)

// ValidateCatalog checks snapshot invariants: unique ids, non-negative prices,
// known categories and modesty tags.
func ValidateCatalog(products []Product) error {
	seen := make(map[int]struct{}, len(products))
	for i := range products {
		p := &products[i]
		if _, dup := seen[p.ID]; dup {
			return domain.NewCatalogError(p.ID, "duplicate id")
		}
		seen[p.ID] = struct{}{}

		if p.Price < 0 || math.IsNaN(p.Price) {
			return domain.NewCatalogError(p.ID, fmt.Sprintf("price must be >= 0, got %v", p.Price))
		}
		if !p.Category.IsValid() {
			return domain.NewCatalogError(p.ID, fmt.Sprintf("unknown category %q", p.Category))
		}
		for _, a := range p.ModestyAttributes {
			if !a.IsValid() {
				return domain.NewCatalogError(p.ID, fmt.Sprintf("unknown modesty attribute %q", a))
			}
		}
	}
	return nil
}

// Index maps product ids to positions in a catalog snapshot.
type Index map[int]int

// NewIndex builds an id index over products. Later duplicates are ignored.
func NewIndex(products []Product) Index {
	idx := make(Index, len(products))
	for i := range products {
		if _, ok := idx[products[i].ID]; !ok {
			idx[products[i].ID] = i
		}
	}
	return idx
}
