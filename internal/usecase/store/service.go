// Package store is the store directory: lookups by name, slug, id and owner,
// and owner-gated whole-record updates.
package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/domain"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
	"github.com/modestbazar/storefront/internal/metrics"
)

// Directory keeps every store record in memory, backed by the repository.
type Directory struct {
	repo   Repository
	logger *zap.Logger

	mu     sync.RWMutex
	stores []domstore.Store
	owners map[string]domstore.Owner
}

// New creates a store directory. Call Load or Seed before serving reads.
func New(repo Repository, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{repo: repo, logger: logger, owners: make(map[string]domstore.Owner)}
}

// Load reads stores and owners from the repository.
func (d *Directory) Load(ctx context.Context) error {
	stores, err := d.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load stores: %w", err)
	}
	owners, err := d.repo.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("load owners: %w", err)
	}
	d.swap(stores, owners)
	d.logger.Info("Stores loaded", zap.Int("stores", len(stores)), zap.Int("owners", len(owners)))
	return nil
}

// Seed writes stores and owners to the repository and makes them current.
func (d *Directory) Seed(ctx context.Context, stores []domstore.Store, owners []domstore.Owner) error {
	if err := d.repo.ReplaceAll(ctx, stores); err != nil {
		return fmt.Errorf("seed stores: %w", err)
	}
	if err := d.repo.ReplaceOwners(ctx, owners); err != nil {
		return fmt.Errorf("seed owners: %w", err)
	}
	d.swap(stores, owners)
	d.logger.Info("Stores seeded", zap.Int("stores", len(stores)), zap.Int("owners", len(owners)))
	return nil
}

// List returns every store.
func (d *Directory) List(_ context.Context) ([]domstore.Store, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domstore.Store, len(d.stores))
	copy(out, d.stores)
	return out, nil
}

// ByName returns the store whose name equals the product brand name.
func (d *Directory) ByName(_ context.Context, name string) (domstore.Store, error) {
	return d.find(func(s *domstore.Store) bool { return s.Name == name }, "name", name)
}

// BySlug returns the store addressed by its URL slug.
func (d *Directory) BySlug(_ context.Context, slug string) (domstore.Store, error) {
	return d.find(func(s *domstore.Store) bool { return s.Slug == slug }, "slug", slug)
}

// ByID returns the store with the given id.
func (d *Directory) ByID(_ context.Context, id string) (domstore.Store, error) {
	return d.find(func(s *domstore.Store) bool { return s.ID == id }, "id", id)
}

// ByOwner returns the store managed by ownerID.
func (d *Directory) ByOwner(_ context.Context, ownerID string) (domstore.Store, error) {
	return d.find(func(s *domstore.Store) bool { return s.OwnerID == ownerID }, "owner", ownerID)
}

// Owner returns an owner account.
func (d *Directory) Owner(_ context.Context, id string) (domstore.Owner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	o, ok := d.owners[id]
	if !ok {
		return domstore.Owner{}, fmt.Errorf("owner %q: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

// Update applies patch to the store id on behalf of ownerID and persists the
// whole record. Only the store's owner may update it. Markup in the
// description is stripped.
func (d *Directory) Update(ctx context.Context, ownerID, id string, patch domstore.Patch) (domstore.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexLocked(func(s *domstore.Store) bool { return s.ID == id })
	if i < 0 {
		metrics.StoreUpdatesTotal.WithLabelValues("error").Inc()
		return domstore.Store{}, fmt.Errorf("store id %q: %w", id, domain.ErrStoreNotFound)
	}
	if !d.ownsLocked(ownerID, &d.stores[i]) {
		metrics.StoreUpdatesTotal.WithLabelValues("forbidden").Inc()
		d.logger.Warn("Store update rejected",
			zap.String("store_id", id),
			zap.String("owner_id", ownerID),
		)
		return domstore.Store{}, fmt.Errorf("update store %q: %w", id, domain.ErrForbidden)
	}

	next, err := sanitizePatch(patch).Apply(d.stores[i])
	if err != nil {
		metrics.StoreUpdatesTotal.WithLabelValues("error").Inc()
		return domstore.Store{}, fmt.Errorf("update store %q: %w", id, err)
	}
	if err := d.repo.Put(ctx, next); err != nil {
		metrics.StoreUpdatesTotal.WithLabelValues("error").Inc()
		return domstore.Store{}, fmt.Errorf("update store %q: %w", id, err)
	}
	d.stores[i] = next

	metrics.StoreUpdatesTotal.WithLabelValues("ok").Inc()
	d.logger.Info("Store updated",
		zap.String("store_id", id),
		zap.String("owner_id", ownerID),
	)
	return next, nil
}

// ownsLocked mirrors the owner check of the storefront: the store names the
// owner, or the owner account names the store.
func (d *Directory) ownsLocked(ownerID string, s *domstore.Store) bool {
	if ownerID == "" {
		return false
	}
	if s.OwnerID == ownerID {
		return true
	}
	o, ok := d.owners[ownerID]
	return ok && o.StoreID == s.ID
}

func (d *Directory) find(match func(*domstore.Store) bool, by, key string) (domstore.Store, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.indexLocked(match)
	if i < 0 {
		return domstore.Store{}, fmt.Errorf("store %s %q: %w", by, key, domain.ErrStoreNotFound)
	}
	return d.stores[i], nil
}

func (d *Directory) indexLocked(match func(*domstore.Store) bool) int {
	for i := range d.stores {
		if match(&d.stores[i]) {
			return i
		}
	}
	return -1
}

func (d *Directory) swap(stores []domstore.Store, owners []domstore.Owner) {
	cp := make([]domstore.Store, len(stores))
	copy(cp, stores)
	om := make(map[string]domstore.Owner, len(owners))
	for _, o := range owners {
		om[o.ID] = o
	}
	d.mu.Lock()
	d.stores = cp
	d.owners = om
	d.mu.Unlock()
}

