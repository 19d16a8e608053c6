package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics.
var (
	FacetComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "facet_compute_duration_seconds",
			Help:      "Facet computation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"scope"}, // "catalog" / "store"
	)

	FilterApplyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "filter_apply_duration_seconds",
			Help:      "Filter pass duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"scope"},
	)

	SelectionEmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "selection_emissions_total",
			Help:      "Settled filter selections published to subscribers",
		},
		[]string{"trigger"}, // "debounce" / "clear"
	)

	CatalogSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "catalog_sessions_active",
			Help:      "Open live catalog view sessions",
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "catalog_products",
			Help:      "Products in the loaded catalog snapshot",
		},
	)

	StoreUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "store_updates_total",
			Help:      "Store record update attempts",
		},
		[]string{"result"}, // "ok" / "forbidden" / "error"
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers Prometheus catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(FacetComputeDuration)
	prometheus.MustRegister(FilterApplyDuration)
	prometheus.MustRegister(SelectionEmissionsTotal)
	prometheus.MustRegister(CatalogSessionsActive)
	prometheus.MustRegister(CatalogProducts)
	prometheus.MustRegister(StoreUpdatesTotal)
	catalogMetricsRegistered = true
}
