// Package product defines the catalog entity and its closed enumerations.
package product

// Category is the single-valued product category.
type Category string

// Known categories.
const (
	CategoryAbaya Category = "abaya"
	CategoryDress Category = "dress"
	CategoryTop   Category = "top"
	CategoryPants Category = "pants"
	CategorySet   Category = "set"
	CategoryHijab Category = "hijab"
	CategoryInner Category = "inner"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryAbaya, CategoryDress, CategoryTop, CategoryPants, CategorySet, CategoryHijab, CategoryInner,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ModestyAttribute is a multi-valued modesty tag.
type ModestyAttribute string

// Known modesty tags.
const (
	ModestyOpaque          ModestyAttribute = "opaque"
	ModestyNeedsLayer      ModestyAttribute = "needs_layer"
	ModestyLongSleeve      ModestyAttribute = "long_sleeve"
	ModestyWuduFriendly    ModestyAttribute = "wudu_friendly"
	ModestyNursingFriendly ModestyAttribute = "nursing_friendly"
	ModestyLooseFit        ModestyAttribute = "loose_fit"
	ModestyMaxiLength      ModestyAttribute = "maxi_length"
)

// IsValid reports whether a is a known modesty tag.
func (a ModestyAttribute) IsValid() bool {
	switch a {
	case ModestyOpaque, ModestyNeedsLayer, ModestyLongSleeve, ModestyWuduFriendly,
		ModestyNursingFriendly, ModestyLooseFit, ModestyMaxiLength:
		return true
	}
	return false
}

// StylingRole tags the purpose of a styling link.
type StylingRole string

// Known styling roles.
const (
	RoleHijab      StylingRole = "hijab"
	RoleInnerLayer StylingRole = "inner_layer"
	RoleCardigan   StylingRole = "cardigan"
	RolePants      StylingRole = "pants"
	RoleAccessory  StylingRole = "accessory"
)

// StylingLink points from a product to a product that completes its look.
type StylingLink struct {
	Role      StylingRole `json:"type" yaml:"type"`
	ProductID int         `json:"productId" yaml:"productId"`
}

// Product is a catalog entry.
//
// Optional single-valued attributes are pointers; optional lists are nil when
// the attribute is absent. An absent attribute never matches an active filter.
type Product struct {
	ID                     int                `json:"id" yaml:"id"`
	Name                   string             `json:"name" yaml:"name"`
	Brand                  string             `json:"brand" yaml:"brand"`
	Price                  float64            `json:"price" yaml:"price"`
	Images                 []string           `json:"images" yaml:"images"`
	Category               Category           `json:"category" yaml:"category"`
	ColorFamily            string             `json:"colorFamily" yaml:"colorFamily"`
	ModestyAttributes      []ModestyAttribute `json:"modestyAttributes" yaml:"modestyAttributes"`
	Description            string             `json:"description" yaml:"description"`
	SizeGuide              string             `json:"sizeGuide" yaml:"sizeGuide"`
	StylingRecommendations []StylingLink      `json:"stylingRecommendations,omitempty" yaml:"stylingRecommendations,omitempty"`
	StoreID                *string            `json:"storeId,omitempty" yaml:"storeId,omitempty"`

	Sizes       []string `json:"sizes" yaml:"sizes,omitempty"`
	Colors      []string `json:"colors" yaml:"colors,omitempty"`
	PatternType *string  `json:"patternType,omitempty" yaml:"patternType,omitempty"`
	Material    *string  `json:"material,omitempty" yaml:"material,omitempty"`
	Occasions   []string `json:"occasions" yaml:"occasions,omitempty"`

	HijabFriendly    *string `json:"hijabFriendly,omitempty" yaml:"hijabFriendly,omitempty"`
	SleeveLength     *string `json:"sleeveLength,omitempty" yaml:"sleeveLength,omitempty"`
	NecklineCoverage *string `json:"necklineCoverage,omitempty" yaml:"necklineCoverage,omitempty"`
	LengthCategory   *string `json:"lengthCategory,omitempty" yaml:"lengthCategory,omitempty"`
	Fit              *string `json:"fit,omitempty" yaml:"fit,omitempty"`
	Opacity          *string `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	SlitCoverage     *string `json:"slitCoverage,omitempty" yaml:"slitCoverage,omitempty"`

	Rating      *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty" yaml:"reviewCount,omitempty"`
}

// ColorValues returns the colors used for filtering: Colors when present,
// otherwise ColorFamily alone.
func (p *Product) ColorValues() []string {
	if p.Colors != nil {
		return p.Colors
	}
	if p.ColorFamily == "" {
		return nil
	}
	return []string{p.ColorFamily}
}

// HasModestyOverlap reports whether p and other share at least one modesty tag.
func (p *Product) HasModestyOverlap(other *Product) bool {
	for _, a := range p.ModestyAttributes {
		for _, b := range other.ModestyAttributes {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Ptr returns a pointer to v. Used to populate optional attributes.
func Ptr[T any](v T) *T { return &v }
