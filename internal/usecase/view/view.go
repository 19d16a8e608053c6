// Package view composes a product scope and a selection state into the
// facets and results a storefront page renders.
package view

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/domain/facet"
	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
	"github.com/modestbazar/storefront/internal/metrics"
	"github.com/modestbazar/storefront/internal/usecase/selection"
)

// Kind names the scope a view covers.
type Kind string

const (
	// KindCatalog covers the whole catalog.
	KindCatalog Kind = "catalog"
	// KindStore covers one store's products.
	KindStore Kind = "store"
)

// Products is the catalog read side used to build scopes.
type Products interface {
	AllProducts(ctx context.Context) ([]product.Product, error)
	ProductsForStore(ctx context.Context, storeName string) ([]product.Product, error)
}

// Snapshot is everything a page renders at one point in time. Facets cover
// the scope and are restricted to the visible sections; results apply the
// full settled selection regardless of visibility.
type Snapshot struct {
	Facets     facet.Set         `json:"facets"`
	Results    []product.Product `json:"results"`
	Visibility []filter.Section  `json:"visibility"`
	Selection  filter.Selection  `json:"selection"`
}

// Option configures a View.
type Option func(*View)

// WithVisibility restricts which facet sections the view exposes.
func WithVisibility(v filter.Visibility) Option {
	return func(vw *View) { vw.visibility = v }
}

// WithKind labels the view for metrics and logs.
func WithKind(k Kind) Option {
	return func(vw *View) { vw.kind = k }
}

// WithLogger sets the view logger.
func WithLogger(l *zap.Logger) Option {
	return func(vw *View) {
		if l != nil {
			vw.logger = l
		}
	}
}

// View derives facets and results from its scope and the settled selection
// at read time. Nothing derived is cached, so facets and results always
// reflect the same scope and selection.
type View struct {
	state *selection.State

	mu         sync.RWMutex
	scope      []product.Product
	visibility filter.Visibility
	kind       Kind
	logger     *zap.Logger

	lmu       sync.Mutex
	listeners map[uint64]func(Snapshot)
	nextID    uint64

	unsubscribe func()
}

// New creates a view over scope driven by state. The scope is copied.
func New(scope []product.Product, state *selection.State, opts ...Option) *View {
	v := &View{
		state:     state,
		scope:     clone(scope),
		kind:      KindCatalog,
		logger:    zap.NewNop(),
		listeners: make(map[uint64]func(Snapshot)),
	}
	for _, o := range opts {
		o(v)
	}
	v.unsubscribe = state.Subscribe(func(filter.Selection) { v.publish() })
	return v
}

// ForCatalog builds a view over every product.
func ForCatalog(ctx context.Context, products Products, state *selection.State, opts ...Option) (*View, error) {
	scope, err := products.AllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog view: %w", err)
	}
	return New(scope, state, append([]Option{WithKind(KindCatalog)}, opts...)...), nil
}

// ForStore builds a view over the products whose brand equals the store name,
// exposing only the store's visible filter sections.
func ForStore(
	ctx context.Context, products Products, st domstore.Store, state *selection.State, opts ...Option,
) (*View, error) {
	scope, err := products.ProductsForStore(ctx, st.Name)
	if err != nil {
		return nil, fmt.Errorf("store view %q: %w", st.Slug, err)
	}
	base := []Option{WithKind(KindStore), WithVisibility(filter.NewVisibility(st.VisibleFilters))}
	return New(scope, state, append(base, opts...)...), nil
}

// Kind returns the scope kind.
func (v *View) Kind() Kind {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.kind
}

// State returns the selection state driving the view.
func (v *View) State() *selection.State { return v.state }

// Facets returns the facets of the whole scope.
func (v *View) Facets() facet.Set {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.facetsLocked()
}

// VisibleFacets returns the facets restricted to the visible sections.
func (v *View) VisibleFacets() facet.Set {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.facetsLocked().Restrict(v.visibility)
}

// Results returns the scope filtered by the settled selection, in scope order.
func (v *View) Results() []product.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.resultsLocked(v.state.Settled())
}

// Visibility returns the visible filter sections.
func (v *View) Visibility() filter.Visibility {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visibility
}

// Snapshot returns facets, results, visibility and the selection they were
// computed from.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Evaluate(v.kind, v.scope, v.visibility, v.state.Settled())
}

// Evaluate computes a snapshot of scope for a fixed selection without
// holding any state. Used by one-shot queries.
func Evaluate(kind Kind, scope []product.Product, visibility filter.Visibility, sel filter.Selection) Snapshot {
	return Snapshot{
		Facets:     computeFacets(kind, scope).Restrict(visibility),
		Results:    applyFilters(kind, scope, sel),
		Visibility: visibility.Sections(),
		Selection:  sel,
	}
}

// SetScope replaces the product scope, kind and visibility, resets the
// selection without publishing it, and pushes a fresh snapshot to
// subscribers. The push is ordered after any delivery already under way, so
// the last snapshot subscribers see reflects the new scope.
func (v *View) SetScope(sc Scope) {
	v.state.ResetAnd(func() {
		v.mu.Lock()
		v.scope = clone(sc.Products)
		v.visibility = sc.Visibility
		if sc.Kind != "" {
			v.kind = sc.Kind
		}
		kind := v.kind
		v.mu.Unlock()

		v.logger.Debug("View scope replaced",
			zap.String("kind", string(kind)),
			zap.Int("products", len(sc.Products)),
		)
		v.publish()
	})
}

// Subscribe registers fn for every snapshot published after the selection
// settles or the scope changes. It returns a function removing fn.
func (v *View) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	v.lmu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.lmu.Lock()
			delete(v.listeners, id)
			v.lmu.Unlock()
		})
	}
}

// Close detaches the view from its selection state.
func (v *View) Close() {
	v.unsubscribe()
	v.lmu.Lock()
	v.listeners = make(map[uint64]func(Snapshot))
	v.lmu.Unlock()
}

func (v *View) publish() {
	v.lmu.Lock()
	if len(v.listeners) == 0 {
		v.lmu.Unlock()
		return
	}
	fns := make([]func(Snapshot), 0, len(v.listeners))
	for _, id := range slices.Sorted(maps.Keys(v.listeners)) {
		fns = append(fns, v.listeners[id])
	}
	v.lmu.Unlock()

	snap := v.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

func (v *View) facetsLocked() facet.Set { return computeFacets(v.kind, v.scope) }

func (v *View) resultsLocked(sel filter.Selection) []product.Product {
	return applyFilters(v.kind, v.scope, sel)
}

func computeFacets(kind Kind, scope []product.Product) facet.Set {
	start := time.Now()
	s := facet.Compute(scope)
	metrics.FacetComputeDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	return s
}

func applyFilters(kind Kind, scope []product.Product, sel filter.Selection) []product.Product {
	start := time.Now()
	out := filter.Apply(scope, sel)
	metrics.FilterApplyDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	return out
}

func clone(products []product.Product) []product.Product {
	out := make([]product.Product, len(products))
	copy(out, products)
	return out
}
