package filter

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/modestbazar/storefront/internal/domain"
)

func TestSelection_ZeroIsEmpty(t *testing.T) {
	var s Selection
	if !s.IsEmpty() {
		t.Error("zero selection should be empty")
	}
	if s.Values(Colors) != nil {
		t.Error("zero selection should have no values")
	}
}

func TestSelection_ToggleOnOff(t *testing.T) {
	s := Selection{}.Toggle(Colors, "black")
	if !s.Has(Colors, "black") {
		t.Fatal("expected black selected")
	}
	s = s.Toggle(Colors, "black")
	if s.Has(Colors, "black") {
		t.Error("expected black deselected")
	}
	if !s.IsEmpty() {
		t.Error("selection should be empty after toggling the only value off")
	}
}

func TestSelection_Immutable(t *testing.T) {
	base := Selection{}.With(Sizes, "M")
	_ = base.Toggle(Sizes, "L")
	_ = base.With(Sizes)
	_ = base.WithBound(MinPrice, f64(10))

	if got := base.Values(Sizes); len(got) != 1 || got[0] != "M" {
		t.Errorf("base changed: %v", got)
	}
	if base.MinPrice() != nil {
		t.Error("base bound changed")
	}
}

func TestSelection_UnknownGroupIgnored(t *testing.T) {
	s := Selection{}.Toggle(Group("shoeSize"), "42").With(Group("nope"), "x")
	if !s.IsEmpty() {
		t.Error("unknown groups must not change the selection")
	}
}

func TestSelection_ValuesSorted(t *testing.T) {
	s := Selection{}.With(Colors, "navy", "black", "cream")
	got := s.Values(Colors)
	want := []string{"black", "cream", "navy"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values = %v, want %v", got, want)
		}
	}
}

func TestSelection_WithBound(t *testing.T) {
	v := 100.0
	s := Selection{}.WithBound(MinPrice, &v)
	v = 999
	if *s.MinPrice() != 100 {
		t.Error("bound must be copied")
	}

	s = s.WithBound(MinPrice, nil)
	if s.MinPrice() != nil {
		t.Error("nil should clear the bound")
	}

	nan := math.NaN()
	if (Selection{}).WithBound(MaxPrice, &nan).MaxPrice() != nil {
		t.Error("NaN should clear the bound")
	}
}

func TestSelection_Active(t *testing.T) {
	s := Selection{}.With(Fits, "loose").With(Categories, "abaya")
	got := s.Active()
	if len(got) != 2 || got[0] != Categories || got[1] != Fits {
		t.Errorf("Active = %v, want [categories fits]", got)
	}
}

func TestSelection_Merge(t *testing.T) {
	a := Selection{}.With(Colors, "black").WithBound(MinPrice, f64(10))
	b := Selection{}.With(Colors, "navy").With(Sizes, "S").WithBound(MinPrice, f64(20))
	m := a.Merge(b)

	if !m.Has(Colors, "black") || !m.Has(Colors, "navy") || !m.Has(Sizes, "S") {
		t.Errorf("merge lost values: %v", m.Active())
	}
	if *m.MinPrice() != 20 {
		t.Errorf("MinPrice = %v, want 20", *m.MinPrice())
	}
	if a.Has(Colors, "navy") {
		t.Error("merge modified receiver")
	}
}

func TestSelection_Equal(t *testing.T) {
	a := Selection{}.With(Colors, "black").WithBound(MaxPrice, f64(5))
	if !a.Equal(Selection{}.WithBound(MaxPrice, f64(5)).With(Colors, "black")) {
		t.Error("expected equal")
	}
	if a.Equal(Selection{}.With(Colors, "black")) {
		t.Error("bounds differ")
	}
	if a.Equal(Selection{}.With(Colors, "navy").WithBound(MaxPrice, f64(5))) {
		t.Error("values differ")
	}
}

func TestSelection_MarshalJSON(t *testing.T) {
	s := Selection{}.With(Colors, "navy", "black").WithBound(MinPrice, f64(500))
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	colors, ok := got["colors"].([]any)
	if !ok || len(colors) != 2 || colors[0] != "black" {
		t.Errorf("colors = %v", got["colors"])
	}
	if got["minPrice"] != 500.0 {
		t.Errorf("minPrice = %v", got["minPrice"])
	}
	if _, ok := got["maxPrice"]; ok {
		t.Error("unset maxPrice should be omitted")
	}
}

func TestParseBound(t *testing.T) {
	if b, err := ParseBound("min"); err != nil || b != MinPrice {
		t.Errorf("ParseBound(min) = %q, %v", b, err)
	}
	if b, err := ParseBound("max"); err != nil || b != MaxPrice {
		t.Errorf("ParseBound(max) = %q, %v", b, err)
	}
	if _, err := ParseBound("mid"); !errors.Is(err, domain.ErrInvalidBound) {
		t.Errorf("expected ErrInvalidBound, got %v", err)
	}
}
