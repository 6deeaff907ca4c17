package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers the simulator routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", app.listProductsHandler)
	mux.HandleFunc("POST /products", app.createProductHandler)
	mux.HandleFunc("GET /products/{id}", app.getProductHandler)
	mux.HandleFunc("PUT /products/{id}", app.updateProductHandler)
	mux.HandleFunc("DELETE /products/{id}", app.deleteProductHandler)
	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /openapi.yaml", app.openapiHandler)
	mux.HandleFunc("GET /docs", app.docsHandler)
	return WithRequestID(WithLogging(mux))
}
