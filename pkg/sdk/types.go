package storefront

import (
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
	checkoutuc "github.com/modestbazar/storefront/internal/usecase/checkout"
	recommenduc "github.com/modestbazar/storefront/internal/usecase/recommend"
	"github.com/modestbazar/storefront/internal/usecase/view"
)

// Public aliases for the domain types the SDK hands out.
type (
	// Product is one catalog item.
	Product = product.Product
	// Store is a brand storefront and the filter sections it shows.
	Store = domstore.Store
	// StorePatch carries the store fields an owner may change.
	StorePatch = domstore.Patch
	// Snapshot is the facets and results a filtered page renders.
	Snapshot = view.Snapshot
	// Recommendations groups styling and similar products.
	Recommendations = recommenduc.Recommendations
	// CheckoutSummary is a priced order with its message link.
	CheckoutSummary = checkoutuc.Summary
)
