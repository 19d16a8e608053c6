package chi

import (
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeForbidden        ErrorCode = "forbidden"
	CodeNotFound         ErrorCode = "not_found"
	CodeProductNotFound  ErrorCode = "product_not_found"
	CodeStoreNotFound    ErrorCode = "store_not_found"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// ProductListResponse lists products in catalog order.
type ProductListResponse struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
}

// ProductDetailResponse is a product with its parsed size guide and star breakdown.
type ProductDetailResponse struct {
	product.Product
	SizeGuideRows []product.SizeRow `json:"sizeGuideRows"`
	Stars         *product.Stars    `json:"stars,omitempty"`
}

// StoreListResponse lists stores.
type StoreListResponse struct {
	Items []domstore.Store `json:"items"`
	Count int              `json:"count"`
}

// CheckoutRequest is the body of POST /api/checkout/summary.
type CheckoutRequest struct {
	MainProductID   int   `json:"mainProductId"`
	ExtraProductIDs []int `json:"extraProductIds"`
}
