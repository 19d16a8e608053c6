package filter

import "github.com/modestbazar/storefront/internal/domain/product"

// Matches reports whether p satisfies every active group of sel.
//
// Groups combine with AND; a multi-valued group matches when any product
// value is selected; a single-valued group matches when the product's value
// is selected. A product lacking the attribute of an active group fails.
// Price bounds are inclusive and are not checked against each other: a
// minimum above the maximum matches nothing.
func Matches(p *product.Product, sel Selection) bool {
	if sel.minPrice != nil && p.Price < *sel.minPrice {
		return false
	}
	if sel.maxPrice != nil && p.Price > *sel.maxPrice {
		return false
	}
	for _, d := range definitions {
		set := sel.values[d.group]
		if len(set) == 0 {
			continue
		}
		if !d.matches(p, set) {
			return false
		}
	}
	return true
}

// Apply returns the products matching sel, in input order.
// An empty selection returns every product.
func Apply(products []product.Product, sel Selection) []product.Product {
	out := make([]product.Product, 0, len(products))
	if sel.IsEmpty() {
		return append(out, products...)
	}
	for i := range products {
		if Matches(&products[i], sel) {
			out = append(out, products[i])
		}
	}
	return out
}
