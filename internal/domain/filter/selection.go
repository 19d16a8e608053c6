package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/modestbazar/storefront/internal/domain"
)

// Bound selects one end of the price range.
type Bound string

// Price bounds.
const (
	MinPrice Bound = "min"
	MaxPrice Bound = "max"
)

// ParseBound validates a price bound name.
func ParseBound(name string) (Bound, error) {
	switch Bound(name) {
	case MinPrice, MaxPrice:
		return Bound(name), nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidBound, name)
}

// Selection is the user's chosen filter values. The zero value selects
// nothing and matches every product.
//
// Selection is immutable: every edit returns a new value, so a Selection can
// be shared between goroutines and subscribers without copying.
type Selection struct {
	values   map[Group]map[string]struct{}
	minPrice *float64
	maxPrice *float64
}

// Toggle adds value to the group if absent, removes it otherwise.
// Unknown groups leave the selection unchanged.
func (s Selection) Toggle(g Group, value string) Selection {
	if _, ok := byGroup[g]; !ok {
		return s
	}
	out := s.clone()
	set := out.values[g]
	if _, on := set[value]; on {
		delete(set, value)
		if len(set) == 0 {
			delete(out.values, g)
		}
		return out
	}
	if set == nil {
		set = make(map[string]struct{})
		out.values[g] = set
	}
	set[value] = struct{}{}
	return out
}

// With replaces the group's values. No values clears the group.
func (s Selection) With(g Group, values ...string) Selection {
	if _, ok := byGroup[g]; !ok {
		return s
	}
	out := s.clone()
	if len(values) == 0 {
		delete(out.values, g)
		return out
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	out.values[g] = set
	return out
}

// WithBound sets or clears (nil) one price bound. NaN clears the bound.
func (s Selection) WithBound(b Bound, v *float64) Selection {
	if v != nil && math.IsNaN(*v) {
		v = nil
	}
	if v != nil {
		cp := *v
		v = &cp
	}
	out := s
	switch b {
	case MinPrice:
		out.minPrice = v
	case MaxPrice:
		out.maxPrice = v
	}
	return out
}

// Values returns the selected values of g, sorted.
func (s Selection) Values(g Group) []string {
	set := s.values[g]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Has reports whether value is selected in g.
func (s Selection) Has(g Group, value string) bool {
	_, ok := s.values[g][value]
	return ok
}

// MinPrice returns the lower price bound, nil when unbounded.
func (s Selection) MinPrice() *float64 { return s.minPrice }

// MaxPrice returns the upper price bound, nil when unbounded.
func (s Selection) MaxPrice() *float64 { return s.maxPrice }

// Active returns the groups with at least one selected value, in canonical order.
func (s Selection) Active() []Group {
	var out []Group
	for _, d := range definitions {
		if len(s.values[d.group]) > 0 {
			out = append(out, d.group)
		}
	}
	return out
}

// IsEmpty reports whether the selection constrains nothing.
func (s Selection) IsEmpty() bool {
	return len(s.values) == 0 && s.minPrice == nil && s.maxPrice == nil
}

// Merge returns the union of both selections. Bounds set in o take precedence.
func (s Selection) Merge(o Selection) Selection {
	out := s.clone()
	for g, set := range o.values {
		dst := out.values[g]
		if dst == nil {
			dst = make(map[string]struct{}, len(set))
			out.values[g] = dst
		}
		for v := range set {
			dst[v] = struct{}{}
		}
	}
	if o.minPrice != nil {
		out.minPrice = o.minPrice
	}
	if o.maxPrice != nil {
		out.maxPrice = o.maxPrice
	}
	return out
}

// Equal reports whether both selections constrain the same values and bounds.
func (s Selection) Equal(o Selection) bool {
	if !equalBound(s.minPrice, o.minPrice) || !equalBound(s.maxPrice, o.maxPrice) {
		return false
	}
	if len(s.values) != len(o.values) {
		return false
	}
	for g, set := range s.values {
		other := o.values[g]
		if len(set) != len(other) {
			return false
		}
		for v := range set {
			if _, ok := other[v]; !ok {
				return false
			}
		}
	}
	return true
}

// MarshalJSON renders the selection as {"colors":["black"],"minPrice":500}.
func (s Selection) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.values)+2)
	for g := range s.values {
		m[string(g)] = s.Values(g)
	}
	if s.minPrice != nil {
		m["minPrice"] = *s.minPrice
	}
	if s.maxPrice != nil {
		m["maxPrice"] = *s.maxPrice
	}
	return json.Marshal(m)
}

func (s Selection) clone() Selection {
	out := Selection{
		values:   make(map[Group]map[string]struct{}, len(s.values)+1),
		minPrice: s.minPrice,
		maxPrice: s.maxPrice,
	}
	for g, set := range s.values {
		cp := make(map[string]struct{}, len(set))
		for v := range set {
			cp[v] = struct{}{}
		}
		out.values[g] = cp
	}
	return out
}

func equalBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
