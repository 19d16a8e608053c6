package view

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
	"github.com/modestbazar/storefront/internal/usecase/selection"
)

const testDelay = 20 * time.Millisecond

// --- Mocks ---

type mockProducts struct {
	all []product.Product
	err error
}

func (m *mockProducts) AllProducts(_ context.Context) ([]product.Product, error) {
	return m.all, m.err
}

func (m *mockProducts) ProductsForStore(_ context.Context, name string) ([]product.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []product.Product
	for _, p := range m.all {
		if p.Brand == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func catalog() []product.Product {
	return []product.Product{
		{ID: 1, Brand: "Abbaya", Category: product.CategoryAbaya, ColorFamily: "olive", Price: 850,
			SleeveLength: product.Ptr("long")},
		{ID: 2, Brand: "Hijabi", Category: product.CategoryPants, ColorFamily: "black", Price: 450},
		{ID: 3, Brand: "Abbaya", Category: product.CategoryHijab, ColorFamily: "black", Price: 120},
	}
}

func ids(products []product.Product) []int {
	out := make([]int, len(products))
	for i := range products {
		out[i] = products[i].ID
	}
	return out
}

func equalIDs(a, b []int) bool {
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

func waitSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Snapshot{}
}

// --- Tests ---

func TestForCatalog(t *testing.T) {
	v, err := ForCatalog(context.Background(), &mockProducts{all: catalog()}, selection.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer v.Close()

	if v.Kind() != KindCatalog {
		t.Errorf("kind = %q", v.Kind())
	}
	if got := ids(v.Results()); !equalIDs(got, []int{1, 2, 3}) {
		t.Errorf("results = %v", got)
	}
	f := v.Facets()
	if f.PriceMin != 120 || f.PriceMax != 850 {
		t.Errorf("price range = %v..%v", f.PriceMin, f.PriceMax)
	}
	if v.Visibility().IsRestricted() {
		t.Error("catalog view should show every section")
	}
}

func TestForStore(t *testing.T) {
	st := domstore.Store{ID: "s1", Slug: "abbaya", Name: "Abbaya", VisibleFilters: []string{"category", "price"}}
	v, err := ForStore(context.Background(), &mockProducts{all: catalog()}, st, selection.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer v.Close()

	if v.Kind() != KindStore {
		t.Errorf("kind = %q", v.Kind())
	}
	if got := ids(v.Results()); !equalIDs(got, []int{1, 3}) {
		t.Errorf("results = %v, want [1 3]", got)
	}
	if got := v.VisibleFacets().Values(filter.Colors); got != nil {
		t.Errorf("hidden color facet exposed: %v", got)
	}
	if got := v.Facets().Values(filter.Colors); len(got) != 2 {
		t.Errorf("full facets should keep colors: %v", got)
	}
}

func TestFor_RepoError(t *testing.T) {
	repo := &mockProducts{err: errors.New("down")}
	if _, err := ForCatalog(context.Background(), repo, selection.New()); err == nil {
		t.Error("ForCatalog: expected error")
	}
	if _, err := ForStore(context.Background(), repo, domstore.Store{Name: "x"}, selection.New()); err == nil {
		t.Error("ForStore: expected error")
	}
}

func TestView_ResultsFollowSettledSelection(t *testing.T) {
	state := selection.New(selection.WithDelay(testDelay))
	v := New(catalog(), state)
	defer v.Close()

	snaps := make(chan Snapshot, 4)
	v.Subscribe(func(s Snapshot) { snaps <- s })

	state.Toggle(filter.Colors, "black")
	if got := ids(v.Results()); len(got) != 3 {
		t.Errorf("results changed before the selection settled: %v", got)
	}

	s := waitSnapshot(t, snaps)
	if got := ids(s.Results); !equalIDs(got, []int{2, 3}) {
		t.Errorf("snapshot results = %v, want [2 3]", got)
	}
	if !s.Selection.Has(filter.Colors, "black") {
		t.Error("snapshot selection missing edit")
	}
	if got := ids(v.Results()); !equalIDs(got, []int{2, 3}) {
		t.Errorf("results = %v, want [2 3]", got)
	}
}

func TestView_FilterIgnoresVisibility(t *testing.T) {
	state := selection.New()
	v := New(catalog(), state, WithVisibility(filter.NewVisibility([]string{"price"})))
	defer v.Close()

	snaps := make(chan Snapshot, 1)
	v.Subscribe(func(s Snapshot) { snaps <- s })

	state.Toggle(filter.SleeveLengths, "long")
	s := waitSnapshot(t, snaps)
	if got := ids(s.Results); !equalIDs(got, []int{1}) {
		t.Errorf("hidden group must still filter: %v", got)
	}
	if len(s.Visibility) != 1 || s.Visibility[0] != filter.SectionPrice {
		t.Errorf("visibility = %v", s.Visibility)
	}
}

func TestView_ClearAllPublishesImmediately(t *testing.T) {
	state := selection.New(selection.WithDelay(time.Hour))
	v := New(catalog(), state)
	defer v.Close()

	var got []Snapshot
	v.Subscribe(func(s Snapshot) { got = append(got, s) })

	state.Toggle(filter.Categories, "abaya")
	state.ClearAll()

	if len(got) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(got))
	}
	if len(got[0].Results) != 3 || !got[0].Selection.IsEmpty() {
		t.Errorf("unexpected snapshot after clear: %v", ids(got[0].Results))
	}
}

func TestView_SetScopeResetsSelection(t *testing.T) {
	state := selection.New(selection.WithDelay(time.Hour))
	v := New(catalog(), state)
	defer v.Close()

	var got []Snapshot
	v.Subscribe(func(s Snapshot) { got = append(got, s) })

	state.Toggle(filter.Colors, "olive")
	next := []product.Product{{ID: 9, Brand: "Tasneem", Category: product.CategoryDress, ColorFamily: "navy", Price: 300}}
	v.SetScope(Scope{Kind: KindStore, Products: next, Visibility: filter.NewVisibility([]string{"color"})})

	if state.Pending() || !state.Current().IsEmpty() {
		t.Error("scope change should reset the selection and drop the pending edit")
	}
	if len(got) != 1 {
		t.Fatalf("expected one snapshot for the new scope, got %d", len(got))
	}
	if r := ids(got[0].Results); !equalIDs(r, []int{9}) {
		t.Errorf("results = %v, want [9]", r)
	}
	if f := v.Facets(); f.PriceMin != 300 || f.PriceMax != 300 {
		t.Errorf("facets not recomputed: %v..%v", f.PriceMin, f.PriceMax)
	}
	if v.Kind() != KindStore {
		t.Errorf("kind = %q, want %q", v.Kind(), KindStore)
	}
}

func TestView_SetScopeKeepsKindWhenUnset(t *testing.T) {
	v := New(catalog(), selection.New(), WithKind(KindStore))
	defer v.Close()

	v.SetScope(Scope{Products: catalog()[:1]})
	if v.Kind() != KindStore {
		t.Errorf("kind = %q, want %q", v.Kind(), KindStore)
	}
}

func TestView_SetScopeDuringDebouncedPush(t *testing.T) {
	state := selection.New(selection.WithDelay(testDelay))
	v := New(catalog(), state)
	defer v.Close()

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu     sync.Mutex
		pushed []Snapshot
		first  = true
	)
	v.Subscribe(func(s Snapshot) {
		mu.Lock()
		block := first
		first = false
		mu.Unlock()
		if block {
			close(entered)
			<-release
		}
		mu.Lock()
		pushed = append(pushed, s)
		mu.Unlock()
	})

	state.Toggle(filter.Colors, "black")
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("debounced push never reached the listener")
	}

	v.SetScope(Scope{Kind: KindCatalog, Products: catalog()[:1]})
	close(release)

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(pushed)
		mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 pushes, got %d", n)
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if got := ids(pushed[0].Results); !equalIDs(got, []int{2, 3}) {
		t.Errorf("first push results = %v, want [2 3]", got)
	}
	last := pushed[len(pushed)-1]
	if !last.Selection.IsEmpty() {
		t.Errorf("last push carries a discarded selection: %v", last.Selection.Active())
	}
	if got := ids(last.Results); !equalIDs(got, []int{1}) {
		t.Errorf("last push results = %v, want [1]", got)
	}
}

func TestView_FacetsConsistentWithResults(t *testing.T) {
	v := New(catalog(), selection.New())
	defer v.Close()
	s := v.Snapshot()
	for _, p := range s.Results {
		if !s.Facets.Has(filter.Categories, string(p.Category)) {
			t.Errorf("result category %q missing from facets", p.Category)
		}
	}
}

func TestView_UnsubscribeAndClose(t *testing.T) {
	state := selection.New()
	v := New(catalog(), state)

	calls := 0
	unsubscribe := v.Subscribe(func(Snapshot) { calls++ })
	state.ClearAll()
	unsubscribe()
	state.ClearAll()
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}

	v.Subscribe(func(Snapshot) { calls++ })
	v.Close()
	state.ClearAll()
	if calls != 1 {
		t.Errorf("closed view should not publish, got %d calls", calls)
	}
}

func TestView_EmptyScope(t *testing.T) {
	v := New(nil, selection.New())
	defer v.Close()
	s := v.Snapshot()
	if len(s.Results) != 0 || s.Facets.PriceMin != 0 || s.Facets.PriceMax != 0 {
		t.Errorf("unexpected empty-scope snapshot: %+v", s)
	}
}

func TestSnapshot_JSON(t *testing.T) {
	v := New(catalog(), selection.New())
	defer v.Close()
	data, err := json.Marshal(v.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"facets", "results", "visibility", "selection"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestEvaluate(t *testing.T) {
	sel := filter.Selection{}.Toggle(filter.Colors, "black")
	vis := filter.NewVisibility([]string{"category"})

	snap := Evaluate(KindStore, catalog(), vis, sel)

	if got := ids(snap.Results); !equalIDs(got, []int{2, 3}) {
		t.Errorf("results = %v, want [2 3]", got)
	}
	if len(snap.Facets.Values(filter.Colors)) != 0 {
		t.Errorf("hidden color facet leaked: %v", snap.Facets.Values(filter.Colors))
	}
	if len(snap.Facets.Values(filter.Categories)) != 3 {
		t.Errorf("expected 3 categories, got %v", snap.Facets.Values(filter.Categories))
	}
	if !snap.Selection.Equal(sel) {
		t.Error("selection not carried into snapshot")
	}
}
