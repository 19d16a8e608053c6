package facet

import (
	"encoding/json"
	"testing"

	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/domain/product"
)

func catalog() []product.Product {
	return []product.Product{
		{
			ID: 1, Brand: "Abbaya", Category: product.CategoryAbaya, ColorFamily: "black", Price: 850,
			Sizes: []string{"M", "L"}, Colors: []string{"navy", "black"}, Material: product.Ptr("Chiffon"),
			SleeveLength: product.Ptr("long"),
		},
		{
			ID: 2, Brand: "Hijabi", Category: product.CategoryHijab, ColorFamily: "olive", Price: 120,
		},
		{
			ID: 3, Brand: "Abbaya", Category: product.CategoryDress, ColorFamily: "cream", Price: 430,
			Sizes: []string{"S"}, Occasions: []string{"Work", "Casual"}, Material: product.Ptr(""),
		},
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCompute(t *testing.T) {
	s := Compute(catalog())

	tests := []struct {
		group filter.Group
		want  []string
	}{
		{filter.Categories, []string{"abaya", "dress", "hijab"}},
		{filter.Brands, []string{"Abbaya", "Hijabi"}},
		{filter.Sizes, []string{"L", "M", "S"}},
		{filter.Colors, []string{"black", "cream", "navy", "olive"}},
		{filter.Materials, []string{"Chiffon"}},
		{filter.Occasions, []string{"Casual", "Work"}},
		{filter.SleeveLengths, []string{"long"}},
		{filter.Fits, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.group), func(t *testing.T) {
			if got := s.Values(tt.group); !equal(got, tt.want) {
				t.Errorf("Values(%s) = %v, want %v", tt.group, got, tt.want)
			}
		})
	}

	if s.PriceMin != 120 || s.PriceMax != 850 {
		t.Errorf("price range = %v..%v, want 120..850", s.PriceMin, s.PriceMax)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	if !s.IsEmpty() {
		t.Error("expected no values")
	}
	if s.PriceMin != 0 || s.PriceMax != 0 {
		t.Errorf("price range = %v..%v, want 0..0", s.PriceMin, s.PriceMax)
	}
}

func TestCompute_Soundness(t *testing.T) {
	products := catalog()
	s := Compute(products)
	for _, g := range filter.Groups() {
		for _, v := range s.Values(g) {
			matched := filter.Apply(products, filter.Selection{}.With(g, v))
			if len(matched) == 0 {
				t.Errorf("facet %s=%s matches no product", g, v)
			}
		}
	}
}

func TestCompute_DoesNotModifyInput(t *testing.T) {
	products := catalog()
	_ = Compute(products)
	if !equal(products[0].Colors, []string{"navy", "black"}) {
		t.Errorf("input colors reordered: %v", products[0].Colors)
	}
}

func TestSet_Has(t *testing.T) {
	s := Compute(catalog())
	if !s.Has(filter.Colors, "olive") {
		t.Error("olive should be available")
	}
	if s.Has(filter.Colors, "red") {
		t.Error("red should not be available")
	}
}

func TestSet_Restrict(t *testing.T) {
	s := Compute(catalog()).Restrict(filter.NewVisibility([]string{"category", "modesty"}))
	if s.Values(filter.Categories) == nil || s.Values(filter.SleeveLengths) == nil {
		t.Error("allowed groups dropped")
	}
	if s.Values(filter.Colors) != nil || s.Values(filter.Brands) != nil {
		t.Error("hidden groups kept")
	}
	if s.PriceMax != 850 {
		t.Error("price range should be kept")
	}
}

func TestSet_Options(t *testing.T) {
	s := Compute(catalog())
	opts := s.Options(filter.Colors)
	if len(opts) != 4 || opts[0].Value != "black" || opts[0].Swatch != "#000000" {
		t.Errorf("color options = %+v", opts)
	}
	cats := s.Options(filter.Categories)
	if cats[0].Label != "Women Abayas" || cats[0].Swatch != "" {
		t.Errorf("category option = %+v", cats[0])
	}
	if s.Options(filter.Fits) != nil {
		t.Error("empty group should have no options")
	}
}

func TestSet_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Compute(catalog()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["minPrice"] != 120.0 || got["maxPrice"] != 850.0 {
		t.Errorf("price = %v..%v", got["minPrice"], got["maxPrice"])
	}
	fits, ok := got["fits"].([]any)
	if !ok || len(fits) != 0 {
		t.Errorf("fits = %#v, want []", got["fits"])
	}
	if len(got) != len(filter.Groups())+2 {
		t.Errorf("unexpected keys: %d", len(got))
	}
}
