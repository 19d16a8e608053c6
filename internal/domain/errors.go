package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrStoreNotFound signals a missing store.
	ErrStoreNotFound = errors.New("store not found")
	// ErrForbidden signals that the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized signals a missing or unknown owner token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCatalog signals a catalog snapshot that breaks its invariants.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrUnknownGroup signals a filter group name outside the known set.
	ErrUnknownGroup = errors.New("unknown filter group")
	// ErrInvalidBound signals a price bound other than min or max.
	ErrInvalidBound = errors.New("invalid price bound")
	// ErrInvalidPatch signals a store update carrying no usable fields.
	ErrInvalidPatch = errors.New("invalid store patch")
)

// CatalogError wraps ErrInvalidCatalog with the offending product id.
type CatalogError struct {
	ProductID int
	Reason    string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: product %d: %s", ErrInvalidCatalog.Error(), e.ProductID, e.Reason)
}

func (e *CatalogError) Unwrap() error { return ErrInvalidCatalog }

// NewCatalogError creates a catalog invariant error.
func NewCatalogError(productID int, reason string) error {
	return &CatalogError{ProductID: productID, Reason: reason}
}
