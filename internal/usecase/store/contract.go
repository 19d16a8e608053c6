package store

import (
	"context"

	domstore "github.com/modestbazar/storefront/internal/domain/store"
)

// Repository defines the storage contract for store records and their owners.
type Repository interface {
	List(ctx context.Context) ([]domstore.Store, error)
	Put(ctx context.Context, s domstore.Store) error
	ReplaceAll(ctx context.Context, stores []domstore.Store) error
	ListOwners(ctx context.Context) ([]domstore.Owner, error)
	ReplaceOwners(ctx context.Context, owners []domstore.Owner) error
}
