package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/domain"
	"github.com/modestbazar/storefront/internal/domain/filter"
	"github.com/modestbazar/storefront/internal/domain/product"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
	cataloguc "github.com/modestbazar/storefront/internal/usecase/catalog"
	checkoutuc "github.com/modestbazar/storefront/internal/usecase/checkout"
	healthuc "github.com/modestbazar/storefront/internal/usecase/health"
	recommenduc "github.com/modestbazar/storefront/internal/usecase/recommend"
	storeuc "github.com/modestbazar/storefront/internal/usecase/store"
	"github.com/modestbazar/storefront/internal/usecase/view"
	"github.com/modestbazar/storefront/internal/version"
)

// Query parameters of the catalog query that are not filter groups.
const (
	paramStore    = "store"
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the storefront REST API.
type Server struct {
	catalog       *cataloguc.Service
	stores        *storeuc.Directory
	recommend     *recommenduc.Service
	checkout      *checkoutuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	stores *storeuc.Directory,
	recommend *recommenduc.Service,
	checkout *checkoutuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:   catalog,
		stores:    stores,
		recommend: recommend,
		checkout:  checkout,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, CodeProductNotFound),
		sentinelHandler(domain.ErrStoreNotFound, http.StatusNotFound, CodeStoreNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, CodeForbidden),
		sentinelHandler(domain.ErrUnknownGroup, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidBound, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidPatch, http.StatusBadRequest, CodeValidationFailed),
	}
	return s
}

// Register mounts every route on r. ownerAuth guards the owner routes.
// The {store} segment is a slug on reads and a store id on updates; chi
// needs one parameter name per segment.
func (s *Server) Register(r gochi.Router, ownerAuth func(http.Handler) http.Handler) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r gochi.Router) {
		r.Get("/catalog", s.QueryCatalog)
		r.Get("/products", s.ListProducts)
		r.Get("/products/{id}", s.GetProduct)
		r.Get("/products/{id}/recommendations", s.GetRecommendations)
		r.Get("/stores", s.ListStores)
		r.Get("/stores/{store}", s.GetStore)
		r.Get("/stores/{store}/products", s.ListStoreProducts)
		r.Post("/checkout/summary", s.CheckoutSummary)

		r.Group(func(r gochi.Router) {
			r.Use(ownerAuth)
			r.Get("/owner/store", s.GetOwnStore)
			r.Patch("/stores/{store}", s.UpdateStore)
		})
	})
}

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.AllProducts(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Items: products, Count: len(products)})
}

// QueryCatalog handles GET /api/catalog: facets and results for a selection
// passed as query parameters, over the whole catalog or one store.
func (s *Server) QueryCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var slug *string
	if err := runtime.BindQueryParameter("form", true, false, paramStore, q, &slug); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid store parameter: "+err.Error())
		return
	}

	sel, err := selectionFromQuery(q)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownGroup) {
			s.handleDomainError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	sc, err := view.ResolveScope(r.Context(), s.catalog, s.stores, deref(slug))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Evaluate(sc.Kind, sc.Products, sc.Visibility, sel))
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	p, err := s.catalog.ProductByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productDetail(p))
}

// GetRecommendations handles GET /api/products/{id}/recommendations.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid limit parameter: "+err.Error())
		return
	}
	if limit != nil && *limit < 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "limit must not be negative")
		return
	}

	recs, err := s.recommend.For(r.Context(), id, deref(limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// ListStores handles GET /api/stores.
func (s *Server) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.stores.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StoreListResponse{Items: stores, Count: len(stores)})
}

// GetStore handles GET /api/stores/{slug}.
func (s *Server) GetStore(w http.ResponseWriter, r *http.Request) {
	st, err := s.stores.BySlug(r.Context(), gochi.URLParam(r, "store"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ListStoreProducts handles GET /api/stores/{slug}/products.
func (s *Server) ListStoreProducts(w http.ResponseWriter, r *http.Request) {
	st, err := s.stores.BySlug(r.Context(), gochi.URLParam(r, "store"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	products, err := s.catalog.ProductsForStore(r.Context(), st.Name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Items: products, Count: len(products)})
}

// GetOwnStore handles GET /api/owner/store.
func (s *Server) GetOwnStore(w http.ResponseWriter, r *http.Request) {
	owner, ok := OwnerFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, domain.ErrUnauthorized)
		return
	}
	st, err := s.stores.ByOwner(r.Context(), owner)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// UpdateStore handles PATCH /api/stores/{id}.
func (s *Server) UpdateStore(w http.ResponseWriter, r *http.Request) {
	owner, ok := OwnerFromContext(r.Context())
	if !ok {
		s.handleDomainError(w, domain.ErrUnauthorized)
		return
	}

	var patch domstore.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	st, err := s.stores.Update(r.Context(), owner, gochi.URLParam(r, "store"), patch)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// CheckoutSummary handles POST /api/checkout/summary.
func (s *Server) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.MainProductID <= 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "mainProductId is required")
		return
	}

	summary, err := s.checkout.Summarize(r.Context(), req.MainProductID, req.ExtraProductIDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.String(),
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// selectionFromQuery builds a selection from repeated group parameters
// (colors=black&colors=olive) and the price bounds. Unknown keys are rejected.
func selectionFromQuery(q url.Values) (filter.Selection, error) {
	var sel filter.Selection
	for key := range q {
		switch key {
		case paramStore, paramMinPrice, paramMaxPrice:
			continue
		}
		g, err := filter.ParseGroup(key)
		if err != nil {
			return filter.Selection{}, err
		}
		var values *[]string
		if err := runtime.BindQueryParameter("form", true, false, key, q, &values); err != nil {
			return filter.Selection{}, fmt.Errorf("invalid %s parameter: %w", key, err)
		}
		if values != nil {
			sel = sel.With(g, *values...)
		}
	}

	bounds := []struct {
		name  string
		bound filter.Bound
	}{
		{paramMinPrice, filter.MinPrice},
		{paramMaxPrice, filter.MaxPrice},
	}
	for _, b := range bounds {
		var v *float64
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, &v); err != nil {
			return filter.Selection{}, fmt.Errorf("invalid %s parameter: %w", b.name, err)
		}
		sel = sel.WithBound(b.bound, v)
	}
	return sel, nil
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter id: "+err.Error())
		return 0, false
	}
	return id, true
}

func productDetail(p product.Product) ProductDetailResponse {
	resp := ProductDetailResponse{
		Product:       p,
		SizeGuideRows: product.ParseSizeGuide(p.SizeGuide),
	}
	if p.Rating != nil {
		stars := product.StarBreakdown(*p.Rating)
		resp.Stars = &stars
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrStoreNotFound,
		domain.ErrNotFound,
		domain.ErrUnauthorized,
		domain.ErrForbidden,
		domain.ErrUnknownGroup,
		domain.ErrInvalidBound,
		domain.ErrInvalidPatch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
