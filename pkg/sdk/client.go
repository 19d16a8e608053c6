package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/db"
	"github.com/modestbazar/storefront/internal/db/memory"
	dbRedis "github.com/modestbazar/storefront/internal/db/redis"
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
	productrepo "github.com/modestbazar/storefront/internal/repository/product"
	storerepo "github.com/modestbazar/storefront/internal/repository/store"
	"github.com/modestbazar/storefront/internal/seed"
	cataloguc "github.com/modestbazar/storefront/internal/usecase/catalog"
	checkoutuc "github.com/modestbazar/storefront/internal/usecase/checkout"
	healthuc "github.com/modestbazar/storefront/internal/usecase/health"
	recommenduc "github.com/modestbazar/storefront/internal/usecase/recommend"
	"github.com/modestbazar/storefront/internal/usecase/selection"
	storeuc "github.com/modestbazar/storefront/internal/usecase/store"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "storefront"

	driverMemory = "memory"
	driverRedis  = "redis"
)

// Internal interfaces so tests can swap the services.
type catalogUseCase interface {
	AllProducts(ctx context.Context) ([]product.Product, error)
	ProductsForStore(ctx context.Context, storeName string) ([]product.Product, error)
	ProductByID(ctx context.Context, id int) (product.Product, error)
}

type storeUseCase interface {
	List(ctx context.Context) ([]domstore.Store, error)
	BySlug(ctx context.Context, slug string) (domstore.Store, error)
	ByOwner(ctx context.Context, ownerID string) (domstore.Store, error)
	Update(ctx context.Context, ownerID, id string, patch domstore.Patch) (domstore.Store, error)
}

type recommendUseCase interface {
	For(ctx context.Context, id, limit int) (recommenduc.Recommendations, error)
}

type checkoutUseCase interface {
	Summarize(ctx context.Context, mainID int, extraIDs []int) (checkoutuc.Summary, error)
}

// Client is the storefront SDK entry point.
type Client struct {
	store        db.Store
	catalogSvc   catalogUseCase
	storeSvc     storeUseCase
	recommendSvc recommendUseCase
	checkoutSvc  checkoutUseCase
	healthSvc    healthUseCase
	debounce     time.Duration
	obs          *observer
}

// New creates a Client, connects to storage and either seeds the bundled
// demo data or loads what storage holds. The provided context is used for
// the readiness check and the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:    driverMemory,
		keyPrefix: defaultKeyPrefix,
		debounce:  selection.DefaultDelay,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("storefront: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverRedis:
		if len(cfg.addrs) == 0 {
			return nil, errors.New("storefront: redis address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("storefront: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storefront: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	log := zap.NewNop()
	catalogSvc := cataloguc.New(productrepo.New(store, cfg.keyPrefix), log)
	directory := storeuc.New(storerepo.New(store, cfg.keyPrefix), log)

	if cfg.seed {
		if err := seed.New().Apply(ctx, catalogSvc, directory); err != nil {
			return nil, fmt.Errorf("storefront: seed: %w", err)
		}
	} else {
		if err := catalogSvc.Load(ctx); err != nil {
			return nil, fmt.Errorf("storefront: load catalog: %w", err)
		}
		if err := directory.Load(ctx); err != nil {
			return nil, fmt.Errorf("storefront: load stores: %w", err)
		}
	}

	return &Client{
		store:        store,
		catalogSvc:   catalogSvc,
		storeSvc:     directory,
		recommendSvc: recommenduc.NewService(catalogSvc, cfg.similarLimit),
		checkoutSvc:  checkoutuc.New(catalogSvc, cfg.phone),
		healthSvc:    healthuc.New(store, catalogSvc),
		debounce:     cfg.debounce,
		obs:          obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks storage connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Products returns the whole catalog in catalog order.
func (c *Client) Products(ctx context.Context) (_ []Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("products.list", start, err) }()

	return c.catalogSvc.AllProducts(ctx)
}

// Product returns one product by id.
func (c *Client) Product(ctx context.Context, id int) (_ Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("products.get", start, err) }()

	return c.catalogSvc.ProductByID(ctx, id)
}

// ProductsForStore returns the products of the store with the given slug.
func (c *Client) ProductsForStore(ctx context.Context, slug string) (_ []Product, err error) {
	start := time.Now()
	defer func() { c.obs.observe("products.store", start, err) }()

	s, err := c.storeSvc.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return c.catalogSvc.ProductsForStore(ctx, s.Name)
}

// Stores lists all stores.
func (c *Client) Stores(ctx context.Context) (_ []Store, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stores.list", start, err) }()

	return c.storeSvc.List(ctx)
}

// Store returns the store with the given slug.
func (c *Client) Store(ctx context.Context, slug string) (_ Store, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stores.get", start, err) }()

	return c.storeSvc.BySlug(ctx, slug)
}

// OwnedStore returns the store managed by ownerID.
func (c *Client) OwnedStore(ctx context.Context, ownerID string) (_ Store, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stores.owned", start, err) }()

	return c.storeSvc.ByOwner(ctx, ownerID)
}

// UpdateStore applies patch to store id on behalf of ownerID. Returns
// ErrForbidden when the owner does not manage the store.
func (c *Client) UpdateStore(ctx context.Context, ownerID, id string, patch StorePatch) (_ Store, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stores.update", start, err) }()

	return c.storeSvc.Update(ctx, ownerID, id, patch)
}

// Recommendations returns styling and similar products for product id.
// A limit of zero uses the configured similar limit.
func (c *Client) Recommendations(ctx context.Context, id, limit int) (_ Recommendations, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommendations", start, err) }()

	return c.recommendSvc.For(ctx, id, limit)
}

// Checkout prices the main product plus extras and builds the order link.
func (c *Client) Checkout(ctx context.Context, mainID int, extraIDs ...int) (_ CheckoutSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("checkout", start, err) }()

	return c.checkoutSvc.Summarize(ctx, mainID, extraIDs)
}
