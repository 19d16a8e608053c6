package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/modestbazar/storefront/internal/domain/product"
	"github.com/modestbazar/storefront/internal/domain/store"
)

// --- Mocks ---

type fakeCatalog struct {
	got []product.Product
	err error
}

func (f *fakeCatalog) Seed(_ context.Context, products []product.Product) error {
	f.got = products
	return f.err
}

type fakeDirectory struct {
	stores []store.Store
	owners []store.Owner
	err    error
}

func (f *fakeDirectory) Seed(_ context.Context, stores []store.Store, owners []store.Owner) error {
	f.stores, f.owners = stores, owners
	return f.err
}

// --- Tests ---

func TestData_Products(t *testing.T) {
	d := New()
	products, err := d.Products()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}
	if err := product.ValidateCatalog(products); err != nil {
		t.Errorf("seed catalog invalid: %v", err)
	}

	abaya := products[0]
	if abaya.Name != "Olive Loose Abaya" || abaya.Category != product.CategoryAbaya {
		t.Errorf("unexpected first product: %+v", abaya)
	}
	if len(abaya.StylingRecommendations) != 2 || abaya.StylingRecommendations[0].Role != product.RoleHijab {
		t.Errorf("styling links not parsed: %+v", abaya.StylingRecommendations)
	}
	if abaya.SleeveLength == nil || *abaya.SleeveLength != "long" {
		t.Error("optional attribute not parsed")
	}
	if products[2].Sizes != nil {
		t.Error("absent sizes should stay nil")
	}
	if products[3].PatternType != nil {
		t.Error("absent pattern type should stay nil")
	}
}

func TestData_ReturnsCopies(t *testing.T) {
	d := New()
	first, _ := d.Products()
	first[0].Name = "changed"
	second, _ := d.Products()
	if second[0].Name == "changed" {
		t.Error("Products returned shared slice")
	}
}

func TestData_StoresAndOwners(t *testing.T) {
	d := New()
	stores, err := d.Stores()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stores) != 4 {
		t.Fatalf("expected 4 stores, got %d", len(stores))
	}
	if stores[1].Slug != "hijabi" || len(stores[1].VisibleFilters) != 4 {
		t.Errorf("unexpected store: %+v", stores[1])
	}

	owners, err := d.Owners()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(owners) != 4 || owners[0].StoreID != "store-1" {
		t.Errorf("unexpected owners: %+v", owners)
	}
}

func TestData_EveryBrandHasStore(t *testing.T) {
	d := New()
	products, _ := d.Products()
	stores, _ := d.Stores()
	names := make(map[string]bool)
	for _, s := range stores {
		names[s.Name] = true
	}
	for _, p := range products {
		if !names[p.Brand] {
			t.Errorf("product %d brand %q has no store", p.ID, p.Brand)
		}
	}
}

func TestData_Apply(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name       string
		catalogErr error
		dirErr     error
		wantErr    error
		wantStores bool
	}{
		{name: "both written", wantStores: true},
		{name: "catalog fails", catalogErr: boom, wantErr: boom},
		{name: "directory fails", dirErr: boom, wantErr: boom, wantStores: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{err: tt.catalogErr}
			directory := &fakeDirectory{err: tt.dirErr}

			err := New().Apply(context.Background(), catalog, directory)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if len(catalog.got) != 4 {
				t.Errorf("catalog received %d products", len(catalog.got))
			}
			if got := len(directory.stores) == 4 && len(directory.owners) == 4; got != tt.wantStores {
				t.Errorf("directory seeded = %v, want %v", got, tt.wantStores)
			}
		})
	}
}
