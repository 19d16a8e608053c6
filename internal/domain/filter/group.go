// Package filter holds the filter groups shared by facet computation and
// product matching, the user's selection, and group visibility.
package filter

import (
	"fmt"

	"github.com/modestbazar/storefront/internal/domain"
	"github.com/modestbazar/storefront/internal/domain/product"
)

// Group names one filterable attribute group.
type Group string

// Known groups. Names match the keys the storefront UI sends.
const (
	Categories       Group = "categories"
	Sizes            Group = "sizes"
	Colors           Group = "colors"
	PatternTypes     Group = "patternTypes"
	Materials        Group = "materials"
	Occasions        Group = "occasions"
	Brands           Group = "brands"
	HijabFriendly    Group = "hijabFriendly"
	SleeveLengths    Group = "sleeveLengths"
	NecklineCoverage Group = "necklineCoverage"
	LengthCategories Group = "lengthCategories"
	Fits             Group = "fits"
	Opacity          Group = "opacity"
	SlitCoverage     Group = "slitCoverage"
)

// Kind tells whether a product carries one value or a set of values for a group.
type Kind int

const (
	// SingleValued groups match by membership of the product's value.
	SingleValued Kind = iota
	// MultiValued groups match when any product value is selected.
	MultiValued
)

// Definition describes how a group reads its values from a product.
type Definition struct {
	group   Group
	section Section
	kind    Kind
	single  func(p *product.Product) (string, bool)
	multi   func(p *product.Product) ([]string, bool)
}

// Group returns the group name.
func (d Definition) Group() Group { return d.group }

// Section returns the UI section the group is rendered in.
func (d Definition) Section() Section { return d.section }

// Kind returns whether the group is single- or multi-valued.
func (d Definition) Kind() Kind { return d.kind }

// Values returns the product's values for the group and whether the product
// carries the attribute at all.
func (d Definition) Values(p *product.Product) ([]string, bool) {
	if d.kind == MultiValued {
		return d.multi(p)
	}
	v, ok := d.single(p)
	if !ok {
		return nil, false
	}
	return []string{v}, true
}

// matches applies the within-group rule against a non-empty selected set.
func (d Definition) matches(p *product.Product, selected map[string]struct{}) bool {
	if d.kind == SingleValued {
		v, ok := d.single(p)
		if !ok {
			return false
		}
		_, hit := selected[v]
		return hit
	}
	vals, ok := d.multi(p)
	if !ok {
		return false
	}
	for _, v := range vals {
		if _, hit := selected[v]; hit {
			return true
		}
	}
	return false
}

func optional(get func(p *product.Product) *string) func(p *product.Product) (string, bool) {
	return func(p *product.Product) (string, bool) {
		v := get(p)
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	}
}

func list(get func(p *product.Product) []string) func(p *product.Product) ([]string, bool) {
	return func(p *product.Product) ([]string, bool) {
		v := get(p)
		return v, v != nil
	}
}

var definitions = []Definition{
	{group: Categories, section: SectionCategory, kind: SingleValued,
		single: func(p *product.Product) (string, bool) { return string(p.Category), p.Category != "" }},
	{group: Sizes, section: SectionSize, kind: MultiValued,
		multi: list(func(p *product.Product) []string { return p.Sizes })},
	{group: Colors, section: SectionColor, kind: MultiValued,
		multi: list(func(p *product.Product) []string { return p.ColorValues() })},
	{group: PatternTypes, section: SectionPatternType, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.PatternType })},
	{group: Materials, section: SectionMaterial, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.Material })},
	{group: Occasions, section: SectionOccasion, kind: MultiValued,
		multi: list(func(p *product.Product) []string { return p.Occasions })},
	{group: Brands, section: SectionBrand, kind: SingleValued,
		single: func(p *product.Product) (string, bool) { return p.Brand, p.Brand != "" }},
	{group: HijabFriendly, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.HijabFriendly })},
	{group: SleeveLengths, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.SleeveLength })},
	{group: NecklineCoverage, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.NecklineCoverage })},
	{group: LengthCategories, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.LengthCategory })},
	{group: Fits, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.Fit })},
	{group: Opacity, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.Opacity })},
	{group: SlitCoverage, section: SectionModesty, kind: SingleValued,
		single: optional(func(p *product.Product) *string { return p.SlitCoverage })},
}

var byGroup = func() map[Group]int {
	m := make(map[Group]int, len(definitions))
	for i, d := range definitions {
		m[d.group] = i
	}
	return m
}()

// Definitions returns every group definition in canonical order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Groups returns every group name in canonical order.
func Groups() []Group {
	out := make([]Group, len(definitions))
	for i, d := range definitions {
		out[i] = d.group
	}
	return out
}

// Lookup returns the definition of g.
func Lookup(g Group) (Definition, bool) {
	i, ok := byGroup[g]
	if !ok {
		return Definition{}, false
	}
	return definitions[i], true
}

// ParseGroup validates a group name coming from a client.
func ParseGroup(name string) (Group, error) {
	g := Group(name)
	if _, ok := byGroup[g]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownGroup, name)
	}
	return g, nil
}
