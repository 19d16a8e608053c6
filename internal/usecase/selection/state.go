// Package selection holds a shopper's filter selection and publishes it
// once edits settle.
package selection

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/metrics"
)

// DefaultDelay is the quiet period after the last edit before the selection is published.
const DefaultDelay = 200 * time.Millisecond

// Listener receives every published selection.
type Listener func(filter.Selection)

// Option configures a State.
type Option func(*State)

// WithDelay overrides the debounce delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger used for emission events.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// State is the mutable selection of one view.
//
// Edits apply immediately to the current selection. The settled selection is
// published to listeners after no edit arrived for the debounce delay; every
// edit restarts the wait. ClearAll publishes at once. Reset empties the
// selection without publishing. Listeners are called one at a time, in
// emission order, outside the state lock, and may call any method. An
// emission raised from inside a listener is delivered after the current one
// finishes.
type State struct {
	mu      sync.Mutex
	current filter.Selection
	settled filter.Selection
	timer   *time.Timer
	gen     uint64

	listeners map[uint64]Listener
	nextID    uint64

	// queue holds deliveries in emission order. Whichever caller finds it
	// idle drains it, so deliveries never overlap.
	qmu      sync.Mutex
	queue    []func()
	draining bool

	delay  time.Duration
	logger *zap.Logger
}

// New creates an empty selection state.
func New(opts ...Option) *State {
	s := &State{
		listeners: make(map[uint64]Listener),
		delay:     DefaultDelay,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Toggle flips value in group g and schedules publication.
// Unknown groups are ignored.
func (s *State) Toggle(g filter.Group, value string) {
	s.edit(func(sel filter.Selection) filter.Selection { return sel.Toggle(g, value) })
}

// SetPriceBound sets or clears (nil) a price bound and schedules publication.
func (s *State) SetPriceBound(b filter.Bound, v *float64) {
	s.edit(func(sel filter.Selection) filter.Selection { return sel.WithBound(b, v) })
}

// ClearAll empties the selection and publishes it immediately, cancelling
// any pending publication.
func (s *State) ClearAll() {
	s.mu.Lock()
	s.resetLocked()
	listeners := s.snapshotLocked()
	s.enqueueLocked(func() {
		metrics.SelectionEmissionsTotal.WithLabelValues("clear").Inc()
		s.logger.Debug("selection cleared")
		notify(listeners, filter.Selection{})
	})
	s.mu.Unlock()
	s.drain()
}

// Reset empties the selection and drops any pending publication without
// notifying listeners. Used when the scope of the view changes.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// ResetAnd resets like Reset and then runs fn in emission order: after every
// delivery already under way and before any later one. A nil fn only resets.
func (s *State) ResetAnd(fn func()) {
	s.mu.Lock()
	s.resetLocked()
	if fn != nil {
		s.enqueueLocked(fn)
	}
	s.mu.Unlock()
	s.drain()
}

// Current returns the selection including edits not yet published.
func (s *State) Current() filter.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Settled returns the last published selection.
func (s *State) Settled() filter.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Pending reports whether a publication is scheduled.
func (s *State) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Subscribe registers fn for published selections and returns a function
// that removes it. The returned function is safe to call more than once.
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close cancels any pending publication and drops all listeners.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.listeners = make(map[uint64]Listener)
}

func (s *State) edit(apply func(filter.Selection) filter.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = apply(s.current)
	s.cancelLocked()
	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

// fire publishes the current selection if no edit superseded generation gen.
func (s *State) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.settled = s.current
	sel := s.settled
	listeners := s.snapshotLocked()
	s.enqueueLocked(func() {
		metrics.SelectionEmissionsTotal.WithLabelValues("debounce").Inc()
		s.logger.Debug("selection settled", zap.Int("active_groups", len(sel.Active())))
		notify(listeners, sel)
	})
	s.mu.Unlock()
	s.drain()
}

func (s *State) resetLocked() {
	s.cancelLocked()
	s.current = filter.Selection{}
	s.settled = s.current
}

// enqueueLocked appends a delivery. Callers hold mu, so queue order matches
// the order in which the state changed.
func (s *State) enqueueLocked(job func()) {
	s.qmu.Lock()
	s.queue = append(s.queue, job)
	s.qmu.Unlock()
}

// drain runs queued deliveries unless another caller is already doing so.
// A listener that raises a new emission returns at once and its delivery
// runs after the current one.
func (s *State) drain() {
	s.qmu.Lock()
	if s.draining {
		s.qmu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 {
		job := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.qmu.Unlock()
		job()
		s.qmu.Lock()
	}
	s.draining = false
	s.qmu.Unlock()
}

// cancelLocked invalidates the pending timer. A timer that already fired
// sees a newer generation and does nothing.
func (s *State) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *State) snapshotLocked() []Listener {
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = s.listeners[id]
	}
	return out
}

func notify(listeners []Listener, sel filter.Selection) {
	for _, fn := range listeners {
		fn(sel)
	}
}
