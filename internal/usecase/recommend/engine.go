// Package recommend selects cross-sell and similar products from a catalog snapshot.
package recommend

import "github.com/modestbazar/storefront/internal/domain/product"

// DefaultSimilarLimit caps similar products when the caller passes no limit.
const DefaultSimilarLimit = 4

// Engine answers recommendation lookups over one immutable catalog snapshot.
type Engine struct {
	products []product.Product
	index    product.Index
}

// NewEngine creates an engine over products. The slice is copied.
func NewEngine(products []product.Product) *Engine {
	cp := make([]product.Product, len(products))
	copy(cp, products)
	return &Engine{products: cp, index: product.NewIndex(cp)}
}

// StylingFor returns the products completing p's look. Explicit styling links
// are resolved in order; links to unknown ids are dropped. Without links, it
// returns every other product of the same color family that is a hijab or an
// inner layer.
func (e *Engine) StylingFor(p *product.Product) []product.Product {
	if len(p.StylingRecommendations) > 0 {
		out := make([]product.Product, 0, len(p.StylingRecommendations))
		for _, link := range p.StylingRecommendations {
			if i, ok := e.index[link.ProductID]; ok {
				out = append(out, e.products[i])
			}
		}
		return out
	}
	return e.collect(p, 0, func(q *product.Product) bool {
		return q.ColorFamily == p.ColorFamily &&
			(q.Category == product.CategoryHijab || q.Category == product.CategoryInner)
	})
}

// SimilarTo returns up to limit other products of p's category, in catalog
// order. When the category has no other member it falls back to products
// sharing the color family or any modesty tag. A non-positive limit uses
// DefaultSimilarLimit.
func (e *Engine) SimilarTo(p *product.Product, limit int) []product.Product {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	same := e.collect(p, limit, func(q *product.Product) bool { return q.Category == p.Category })
	if len(same) > 0 {
		return same
	}
	return e.collect(p, limit, func(q *product.Product) bool {
		return q.ColorFamily == p.ColorFamily || q.HasModestyOverlap(p)
	})
}

// collect returns the products other than p accepted by keep, up to limit
// (0 means unbounded).
func (e *Engine) collect(p *product.Product, limit int, keep func(*product.Product) bool) []product.Product {
	out := make([]product.Product, 0)
	for i := range e.products {
		q := &e.products[i]
		if q.ID == p.ID || !keep(q) {
			continue
		}
		out = append(out, *q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
