// Package ws serves live catalog pages over WebSocket. Each connection owns
// one selection state and one view; edits arrive as JSON messages and every
// settled change is pushed back as a snapshot.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/modestbazar/storefront/internal/domain"
	"github.com/modestbazar/storefront/internal/domain/filter"
	logpkg "github.com/modestbazar/storefront/internal/logger"
	"github.com/modestbazar/storefront/internal/metrics"
	"github.com/modestbazar/storefront/internal/usecase/selection"
	"github.com/modestbazar/storefront/internal/usecase/view"
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultEditRate     = 20
	defaultEditBurst    = 40
)

var errEditRate = errors.New("too many edits, slow down")

// Handler upgrades GET /ws/catalog?store=<slug> to a catalog session.
type Handler struct {
	products       view.Products
	stores         view.Stores
	delay          time.Duration
	writeTimeout   time.Duration
	editRate       rate.Limit
	editBurst      int
	originPatterns []string
	logger         *zap.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithDebounce sets the quiet period before a burst of edits is published.
func WithDebounce(d time.Duration) Option {
	return func(h *Handler) { h.delay = d }
}

// WithWriteTimeout bounds each message write.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithEditRate caps how many edits per second one session may send, with
// burst edits allowed at once. Edits over the cap are answered with an error.
func WithEditRate(perSecond float64, burst int) Option {
	return func(h *Handler) {
		if perSecond > 0 && burst > 0 {
			h.editRate = rate.Limit(perSecond)
			h.editBurst = burst
		}
	}
}

// WithOriginPatterns allows cross-origin pages matching the patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(h *Handler) { h.originPatterns = patterns }
}

// WithLogger sets the fallback logger used when the request carries none.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a session handler.
func NewHandler(products view.Products, stores view.Stores, opts ...Option) *Handler {
	h := &Handler{
		products:     products,
		stores:       stores,
		delay:        selection.DefaultDelay,
		writeTimeout: defaultWriteTimeout,
		editRate:     defaultEditRate,
		editBurst:    defaultEditBurst,
		logger:       zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// ServeHTTP resolves the scope before upgrading so an unknown store is a
// plain 404, then runs the session until the socket closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContextOr(r.Context(), h.logger)
	slug := r.URL.Query().Get("store")

	sc, err := view.ResolveScope(r.Context(), h.products, h.stores, slug)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrStoreNotFound) {
			status = http.StatusNotFound
		}
		log.Warn("Catalog session rejected", zap.String("store", slug), zap.Error(err))
		http.Error(w, http.StatusText(status), status)
		return
	}

	// Server read/write timeouts would otherwise outlive the upgrade.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	log = log.With(zap.String("session_id", uuid.NewString()))
	s := h.newSession(conn, sc, log)
	defer s.close()

	metrics.CatalogSessionsActive.Inc()
	defer metrics.CatalogSessionsActive.Dec()
	log.Info("Catalog session opened",
		zap.String("scope", string(sc.Kind)),
		zap.String("store", slug),
		zap.Int("products", len(sc.Products)),
	)

	err = s.run(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("Catalog session closed")
	default:
		log.Info("Catalog session ended", zap.Error(err))
	}
}

type session struct {
	conn         *websocket.Conn
	handler      *Handler
	state        *selection.State
	view         *view.View
	limiter      *rate.Limiter
	writeTimeout time.Duration
	logger       *zap.Logger
}

func (h *Handler) newSession(conn *websocket.Conn, sc view.Scope, log *zap.Logger) *session {
	state := selection.New(selection.WithDelay(h.delay), selection.WithLogger(log))
	v := view.New(sc.Products, state, append(sc.Options(), view.WithLogger(log))...)
	s := &session{
		conn:         conn,
		handler:      h,
		state:        state,
		view:         v,
		limiter:      rate.NewLimiter(h.editRate, h.editBurst),
		writeTimeout: h.writeTimeout,
		logger:       log,
	}
	v.Subscribe(func(snap view.Snapshot) {
		if err := s.send(context.Background(), viewMessage(snap)); err != nil {
			s.logger.Debug("Snapshot push failed", zap.Error(err))
		}
	})
	return s
}

// run pushes the initial snapshot and applies client edits until the
// connection fails or ctx ends.
func (s *session) run(ctx context.Context) error {
	if err := s.send(ctx, viewMessage(s.view.Snapshot())); err != nil {
		return err
	}
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, s.conn, &msg); err != nil {
			return err
		}
		err := errEditRate
		if s.limiter.Allow() {
			err = s.apply(ctx, msg)
		}
		if err != nil {
			s.logger.Debug("Edit rejected", zap.String("op", msg.Op), zap.Error(err))
			if err := s.send(ctx, errorMessage(err.Error())); err != nil {
				return err
			}
		}
	}
}

func (s *session) apply(ctx context.Context, msg ClientMessage) error {
	switch msg.Op {
	case OpToggle:
		g, err := filter.ParseGroup(msg.Group)
		if err != nil {
			return err
		}
		var value string
		if err := json.Unmarshal(msg.Value, &value); err != nil || value == "" {
			return fmt.Errorf("toggle %s: value must be a non-empty string", g)
		}
		s.state.Toggle(g, value)
	case OpPrice:
		b, err := filter.ParseBound(msg.Bound)
		if err != nil {
			return err
		}
		var value *float64
		if len(msg.Value) > 0 {
			if err := json.Unmarshal(msg.Value, &value); err != nil {
				return fmt.Errorf("price %s: value must be a number or null", b)
			}
		}
		s.state.SetPriceBound(b, value)
	case OpClear:
		s.state.ClearAll()
	case OpScope:
		sc, err := view.ResolveScope(ctx, s.handler.products, s.handler.stores, msg.Store)
		if err != nil {
			return err
		}
		s.view.SetScope(sc)
	default:
		return fmt.Errorf("unknown op %q", msg.Op)
	}
	return nil
}

func (s *session) send(ctx context.Context, msg ServerMessage) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, s.conn, msg)
}

func (s *session) close() {
	s.view.Close()
	s.state.Close()
}
