package filter

// Section is a block of filter controls in the storefront UI.
// Several groups can share a section (all modesty facets render together).
type Section string

// Known sections.
const (
	SectionCategory    Section = "category"
	SectionSize        Section = "size"
	SectionColor       Section = "color"
	SectionPrice       Section = "price"
	SectionPatternType Section = "patternType"
	SectionMaterial    Section = "material"
	SectionOccasion    Section = "occasion"
	SectionBrand       Section = "brand"
	SectionModesty     Section = "modesty"
)

var sections = []Section{
	SectionCategory, SectionSize, SectionColor, SectionPrice, SectionPatternType,
	SectionMaterial, SectionOccasion, SectionBrand, SectionModesty,
}

// Visibility is an allow-list of sections a view renders controls for.
// It never affects matching. The zero value allows every section.
type Visibility struct {
	allowed map[Section]struct{}
}

// NewVisibility builds an allow-list from section names. Unknown names are
// dropped; an empty list allows everything.
func NewVisibility(names []string) Visibility {
	allowed := make(map[Section]struct{}, len(names))
	for _, n := range names {
		for _, s := range sections {
			if Section(n) == s {
				allowed[s] = struct{}{}
			}
		}
	}
	if len(allowed) == 0 {
		return Visibility{}
	}
	return Visibility{allowed: allowed}
}

// IsRestricted reports whether the allow-list hides any section.
func (v Visibility) IsRestricted() bool { return len(v.allowed) > 0 }

// Allows reports whether s is rendered.
func (v Visibility) Allows(s Section) bool {
	if len(v.allowed) == 0 {
		return true
	}
	_, ok := v.allowed[s]
	return ok
}

// AllowsGroup reports whether the section holding g is rendered.
func (v Visibility) AllowsGroup(g Group) bool {
	d, ok := Lookup(g)
	if !ok {
		return false
	}
	return v.Allows(d.section)
}

// Sections returns the rendered sections in canonical order.
func (v Visibility) Sections() []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if v.Allows(s) {
			out = append(out, s)
		}
	}
	return out
}
