// Package facet computes the filter values available in a product scope.
package facet

import (
	"encoding/json"
	"sort"

	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/domain/product"
)

// Set holds the distinct values per filter group and the price range of a scope.
// Values are sorted ascending by byte order. An empty scope has no values and a
// 0/0 price range.
type Set struct {
	values   map[filter.Group][]string
	PriceMin float64
	PriceMax float64
}

// Compute returns the facets of products. It is pure and tolerates products
// missing any optional attribute.
func Compute(products []product.Product) Set {
	s := Set{values: make(map[filter.Group][]string)}
	if len(products) == 0 {
		return s
	}

	defs := filter.Definitions()
	seen := make(map[filter.Group]map[string]struct{}, len(defs))
	for _, d := range defs {
		seen[d.Group()] = make(map[string]struct{})
	}

	s.PriceMin, s.PriceMax = products[0].Price, products[0].Price
	for i := range products {
		p := &products[i]
		if p.Price < s.PriceMin {
			s.PriceMin = p.Price
		}
		if p.Price > s.PriceMax {
			s.PriceMax = p.Price
		}
		for _, d := range defs {
			vals, ok := d.Values(p)
			if !ok {
				continue
			}
			set := seen[d.Group()]
			for _, v := range vals {
				if v != "" {
					set[v] = struct{}{}
				}
			}
		}
	}

	for g, set := range seen {
		if len(set) == 0 {
			continue
		}
		out := make([]string, 0, len(set))
		for v := range set {
			out = append(out, v)
		}
		sort.Strings(out)
		s.values[g] = out
	}
	return s
}

// Values returns the sorted values available for g. The slice must not be modified.
func (s Set) Values(g filter.Group) []string {
	return s.values[g]
}

// Has reports whether value is available for g.
func (s Set) Has(g filter.Group, value string) bool {
	vals := s.values[g]
	i := sort.SearchStrings(vals, value)
	return i < len(vals) && vals[i] == value
}

// IsEmpty reports whether no group has any value.
func (s Set) IsEmpty() bool { return len(s.values) == 0 }

// Restrict drops the groups hidden by v. The price range is kept; whether the
// price section renders is read from v directly.
func (s Set) Restrict(v filter.Visibility) Set {
	out := Set{values: make(map[filter.Group][]string, len(s.values)), PriceMin: s.PriceMin, PriceMax: s.PriceMax}
	for g, vals := range s.values {
		if v.AllowsGroup(g) {
			out.values[g] = vals
		}
	}
	return out
}

// Option is one renderable facet value.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Swatch string `json:"swatch,omitempty"`
}

// Options returns the values of g with display labels, and swatches for colors.
func (s Set) Options(g filter.Group) []Option {
	vals := s.values[g]
	if len(vals) == 0 {
		return nil
	}
	out := make([]Option, len(vals))
	for i, v := range vals {
		out[i] = Option{Value: v, Label: filter.Label(g, v)}
		if g == filter.Colors {
			out[i].Swatch = filter.ColorSwatch(v)
		}
	}
	return out
}

// MarshalJSON renders every group (empty groups as []) plus minPrice and maxPrice.
func (s Set) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.values)+2)
	for _, g := range filter.Groups() {
		vals := s.values[g]
		if vals == nil {
			vals = []string{}
		}
		m[string(g)] = vals
	}
	m["minPrice"] = s.PriceMin
	m["maxPrice"] = s.PriceMax
	return json.Marshal(m)
}
