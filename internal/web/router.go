// Package web exposes the webhook HTTP surface of the service.
package web

import (
	"log/slog"
	"net/http"

	"airtable-shopify-sync/internal/metrics"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", app.homeHandler)
	mux.HandleFunc("/airtable-webhook", app.webhookHandler)
	mux.HandleFunc("/refresh-price-cache", app.refreshPriceCacheHandler)
	mux.Handle("/metrics", metrics.Handler())
	return WithRequestID(WithLogging(log, mux))
}
