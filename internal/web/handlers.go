package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"airtable-shopify-sync/internal/adapters/shopify"
	"airtable-shopify-sync/internal/app/usecases"
	"airtable-shopify-sync/internal/config"
	"airtable-shopify-sync/internal/domain/model"
	"airtable-shopify-sync/internal/logging"
)

const secretHeader = "X-Secret-Token"

type App struct {
	cfg       config.WebhookConfig
	sync      usecases.SyncService
	directory usecases.PriceListDirectoryService
	logger    logging.LoggerService
}

func NewApp(cfg config.WebhookConfig, sync usecases.SyncService, directory usecases.PriceListDirectoryService, logger logging.LoggerService) *App {
	return &App{
		cfg:       cfg,
		sync:      sync,
		directory: directory,
		logger:    logger,
	}
}

type syncResponse struct {
	Status             string                   `json:"status"`
	VariantID          string                   `json:"variant_id"`
	ProductID          string                   `json:"product_id"`
	FieldUpdates       model.Outcome            `json:"field_updates"`
	ProductTitleUpdate model.Outcome            `json:"product_title_update"`
	DefaultPriceUpdate model.Outcome            `json:"default_price_update"`
	MetafieldUpdate    model.Outcome            `json:"metafield_update"`
	InventoryUpdate    model.Outcome            `json:"inventory_update"`
	PriceListUpdates   map[string]model.Outcome `json:"price_list_updates"`
}

func (a *App) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteJSONError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Airtable-Shopify Sync Webhook is running!"))
}

func (a *App) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	secret := r.Header.Get(secretHeader)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(a.cfg.Secret)) != 1 {
		if a.logger != nil {
			a.logger.LogWarning("webhook rejected: bad secret token")
		}
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload model.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	record := payload.Record()
	if record.SKU == "" {
		WriteJSONError(w, http.StatusBadRequest, "SKU missing")
		return
	}

	result, err := a.sync.Run(r.Context(), record)
	if err != nil {
		var notFound *shopify.VariantNotFoundError
		if errors.As(err, &notFound) {
			WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Variant with SKU %s not found", record.SKU))
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	priceListUpdates := make(map[string]model.Outcome, len(result.PriceListUpdates))
	for key, outcome := range result.PriceListUpdates {
		priceListUpdates[string(key)] = outcome
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Status:             "success",
		VariantID:          result.VariantGID,
		ProductID:          result.ProductGID,
		FieldUpdates:       result.FieldUpdates,
		ProductTitleUpdate: result.ProductTitleUpdate,
		DefaultPriceUpdate: result.DefaultPriceUpdate,
		MetafieldUpdate:    result.MetafieldUpdate,
		InventoryUpdate:    result.InventoryUpdate,
		PriceListUpdates:   priceListUpdates,
	})
}

type refreshResponse struct {
	Status     string                          `json:"status"`
	PriceLists map[string]shopify.PriceListRef `json:"price_lists"`
}

func (a *App) refreshPriceCacheHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lists, err := a.directory.Get(r.Context(), true)
	if err != nil {
		if a.logger != nil {
			a.logger.LogError("price list cache refresh failed", err)
		}
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if a.logger != nil {
		a.logger.Log(fmt.Sprintf("price list cache refreshed entries=%d", len(lists)))
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Status:     "refreshed",
		PriceLists: lists,
	})
}
