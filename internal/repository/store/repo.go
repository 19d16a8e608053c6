package store

import (
	"context"
	"fmt"

	domstore "github.com/modestbazar/storefront/internal/domain/store"
)

// store is the consumer interface for store records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HReplace(ctx context.Context, key string, fields map[string]string) error
}

// Repo implements usecase/store.Repository. Stores and owners live in one
// hash each, keyed by id; every write replaces a whole record.
type Repo struct {
	store  store
	prefix string
}

// New creates a store repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// List returns every store ordered by id.
func (r *Repo) List(ctx context.Context) ([]domstore.Store, error) {
	fields, err := r.store.HGetAll(ctx, r.storesKey())
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return decodeRecords[domstore.Store](fields)
}

// Put writes one store record.
func (r *Repo) Put(ctx context.Context, s domstore.Store) error {
	row, err := encodeRecord(s)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, r.storesKey(), map[string]string{s.ID: row}); err != nil {
		return fmt.Errorf("put store %q: %w", s.ID, err)
	}
	return nil
}

// ReplaceAll overwrites every stored store record.
func (r *Repo) ReplaceAll(ctx context.Context, stores []domstore.Store) error {
	fields, err := encodeRecords(stores, func(s domstore.Store) string { return s.ID })
	if err != nil {
		return err
	}
	if err := r.store.HReplace(ctx, r.storesKey(), fields); err != nil {
		return fmt.Errorf("replace stores: %w", err)
	}
	return nil
}

// ListOwners returns every owner ordered by id.
func (r *Repo) ListOwners(ctx context.Context) ([]domstore.Owner, error) {
	fields, err := r.store.HGetAll(ctx, r.ownersKey())
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return decodeRecords[domstore.Owner](fields)
}

// ReplaceOwners overwrites every stored owner record.
func (r *Repo) ReplaceOwners(ctx context.Context, owners []domstore.Owner) error {
	fields, err := encodeRecords(owners, func(o domstore.Owner) string { return o.ID })
	if err != nil {
		return err
	}
	if err := r.store.HReplace(ctx, r.ownersKey(), fields); err != nil {
		return fmt.Errorf("replace owners: %w", err)
	}
	return nil
}

func (r *Repo) storesKey() string { return r.prefix + ":stores" }
func (r *Repo) ownersKey() string { return r.prefix + ":owners" }
