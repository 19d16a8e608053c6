package storefront

import "github.com/modestbazar/storefront/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrProductNotFound = domain.ErrProductNotFound
	ErrStoreNotFound   = domain.ErrStoreNotFound
	ErrNotFound        = domain.ErrNotFound
	ErrForbidden       = domain.ErrForbidden
	ErrInvalidCatalog  = domain.ErrInvalidCatalog
	ErrUnknownGroup    = domain.ErrUnknownGroup
	ErrInvalidBound    = domain.ErrInvalidBound
	ErrInvalidPatch    = domain.ErrInvalidPatch
)
