package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/usecase/selection"
	"github.com/modestbazar/storefront/internal/usecase/view"
)

// Session is a live filtered page over the catalog or one store. Edits are
// debounced; subscribers receive one snapshot per settled burst.
type Session struct {
	client *Client
	state  *selection.State
	view   *view.View

	mu     sync.Mutex
	closed bool
}

// OpenCatalog opens a session over the store with the given slug, or over
// the whole catalog when slug is empty.
func (c *Client) OpenCatalog(ctx context.Context, slug string) (_ *Session, err error) {
	start := time.Now()
	defer func() { c.obs.observe("sessions.open", start, err) }()

	sc, err := view.ResolveScope(ctx, c.catalogSvc, c.storeSvc, slug)
	if err != nil {
		return nil, err
	}
	state := selection.New(selection.WithDelay(c.debounce))
	c.obs.sessionOpened()
	return &Session{
		client: c,
		state:  state,
		view:   view.New(sc.Products, state, sc.Options()...),
	}, nil
}

// Toggle adds value to the named filter group, or removes it when present.
func (s *Session) Toggle(group, value string) error {
	g, err := filter.ParseGroup(group)
	if err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("toggle %s: empty value", g)
	}
	s.state.Toggle(g, value)
	return nil
}

// SetPriceBound sets the "min" or "max" price bound. nil clears it.
func (s *Session) SetPriceBound(bound string, value *float64) error {
	b, err := filter.ParseBound(bound)
	if err != nil {
		return err
	}
	s.state.SetPriceBound(b, value)
	return nil
}

// ClearAll drops every filter and publishes immediately.
func (s *Session) ClearAll() {
	s.state.ClearAll()
}

// Snapshot returns the page for the last settled selection.
func (s *Session) Snapshot() Snapshot {
	return s.view.Snapshot()
}

// Subscribe registers fn for every published snapshot.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.view.Subscribe(fn)
}

// SwitchStore moves the session to another store, or to the whole catalog
// for an empty slug. The selection is reset.
func (s *Session) SwitchStore(ctx context.Context, slug string) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("sessions.switch", start, err) }()

	sc, err := view.ResolveScope(ctx, s.client.catalogSvc, s.client.storeSvc, slug)
	if err != nil {
		return err
	}
	s.view.SetScope(sc)
	return nil
}

// Close stops pending publications. Safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.view.Close()
	s.state.Close()
	s.client.obs.sessionClosed()
}
