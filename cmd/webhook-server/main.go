// Webhook server: receives Airtable record updates and syncs them into
// Shopify (variant fields, default price, market price lists, size
// metafield, inventory).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airtable-shopify-sync/internal/adapters/shopify"
	"airtable-shopify-sync/internal/app/usecases"
	"airtable-shopify-sync/internal/config"
	"airtable-shopify-sync/internal/logging"
	"airtable-shopify-sync/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.TelegramBot)
	logger.Log("webhook server starting")

	shopifyClient := shopify.NewClient(cfg.Shopify, nil, logger)
	directory := shopify.NewPriceListDirectory(shopifyClient)

	fields := usecases.NewFieldUpdater(shopifyClient, logger)
	prices := usecases.NewPriceSynchronizer(directory, shopifyClient, logger)
	sync := usecases.NewOrchestrator(shopifyClient, fields, prices, logger)

	app := web.NewApp(cfg.Webhook, sync, directory, logger)
	handler := web.NewRouter(app, logger.Slog())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Log(fmt.Sprintf("listening on %s", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogError("http server error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	logger.Log(fmt.Sprintf("shutdown signal: %s", s))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError("shutdown error", err)
	}
	logger.LogSuccess("webhook server stopped")
}
