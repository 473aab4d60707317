package httpapi

import (
	"expvar"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := mux.NewRouter()
	r.Use(WithMetrics(app.Metrics))

	r.HandleFunc("/api/products", app.listProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", app.getProductHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/sale", app.getSaleHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/quote", app.quoteHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout", app.checkoutHandler).Methods(http.MethodPost)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(RequireAdmin(app.Cfg.AdminToken))
	admin.HandleFunc("/products", app.createProductHandler).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", app.updateProductHandler).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", app.deleteProductHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/sales", app.listSalesHandler).Methods(http.MethodGet)
	admin.HandleFunc("/sales", app.createSaleHandler).Methods(http.MethodPost)
	admin.HandleFunc("/sales/{id}", app.updateSaleHandler).Methods(http.MethodPut)
	admin.HandleFunc("/sales/{id}", app.deleteSaleHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{id}", app.getOrderHandler).Methods(http.MethodGet)
	admin.HandleFunc("/stats", app.statsHandler).Methods(http.MethodGet)

	r.HandleFunc("/healthz", app.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", app.Metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/debug/metrics", app.debugMetricsHandler).Methods(http.MethodGet)
	r.Handle("/debug/vars", expvar.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/openapi.yaml", app.openapiHandler).Methods(http.MethodGet)
	r.HandleFunc("/docs", app.docsHandler).Methods(http.MethodGet)

	return WithRequestID(WithLogging(r))
}
