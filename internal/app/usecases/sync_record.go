package usecases

import (
	"context"
	"fmt"

	"airtable-shopify-sync/internal/adapters/shopify"
	"airtable-shopify-sync/internal/domain/model"
	"airtable-shopify-sync/internal/logging"
	"airtable-shopify-sync/internal/metrics"
)

// Operation names used to key the aggregate result.
const (
	OpFieldUpdates       = "field_updates"
	OpProductTitleUpdate = "product_title_update"
	OpDefaultPriceUpdate = "default_price_update"
	OpMetafieldUpdate    = "metafield_update"
	OpInventoryUpdate    = "inventory_update"
)

type VariantResolverService interface {
	ResolveVariantBySKU(ctx context.Context, sku string) (shopify.VariantHandle, error)
}

// SyncResult aggregates every sub-operation's outcome for one run, keyed
// by operation name in the response body.
type SyncResult struct {
	VariantGID string
	ProductGID string

	FieldUpdates       model.Outcome
	ProductTitleUpdate model.Outcome
	DefaultPriceUpdate model.Outcome
	MetafieldUpdate    model.Outcome
	InventoryUpdate    model.Outcome
	PriceListUpdates   map[model.MarketKey]model.Outcome
}

type SyncService interface {
	Run(ctx context.Context, record model.SyncRecord) (SyncResult, error)
}

// Orchestrator drives one sync run: resolve the SKU, then apply the
// independent sub-updates in fixed order and collect their outcomes. Only
// resolution failures abort the run; from there on a failed sub-operation
// never prevents its siblings from executing.
type Orchestrator struct {
	resolver VariantResolverService
	fields   *FieldUpdater
	prices   *PriceSynchronizer
	logger   logging.LoggerService
}

func NewOrchestrator(resolver VariantResolverService, fields *FieldUpdater, prices *PriceSynchronizer, logger logging.LoggerService) SyncService {
	return &Orchestrator{
		resolver: resolver,
		fields:   fields,
		prices:   prices,
		logger:   logger,
	}
}

func (o *Orchestrator) Run(ctx context.Context, record model.SyncRecord) (SyncResult, error) {
	variant, err := o.resolver.ResolveVariantBySKU(ctx, record.SKU)
	if err != nil {
		if o.logger != nil {
			o.logger.LogError(fmt.Sprintf("variant resolution failed sku=%s", record.SKU), err)
		}
		return SyncResult{}, err
	}
	if o.logger != nil {
		o.logger.Log(fmt.Sprintf("variant resolved sku=%s variant=%s product=%s inventory_item=%d",
			record.SKU, variant.VariantGID, variant.ProductGID, variant.InventoryItemID))
	}

	result := SyncResult{
		VariantGID: variant.VariantGID,
		ProductGID: variant.ProductGID,
	}

	result.FieldUpdates = recordOp(OpFieldUpdates, o.fields.UpdateFields(ctx, variant, record.Title, record.Barcode))
	result.ProductTitleUpdate = recordOp(OpProductTitleUpdate, o.fields.UpdateProductTitle(ctx, variant, record.Title))
	result.DefaultPriceUpdate = recordOp(OpDefaultPriceUpdate, o.fields.UpdateDefaultPrice(ctx, variant, record.Prices[model.MarketUAE]))
	result.MetafieldUpdate = recordOp(OpMetafieldUpdate, o.fields.SetSizeAttribute(ctx, variant, record.Size))
	result.InventoryUpdate = recordOp(OpInventoryUpdate, o.fields.SetInventory(ctx, variant, record.Quantity))

	result.PriceListUpdates = o.prices.Sync(ctx, variant, record.Prices)
	for key, outcome := range result.PriceListUpdates {
		metrics.RecordOperation("price_list_"+string(key), string(outcome.Status))
	}

	o.logSummary(record.SKU, result)
	return result, nil
}

func recordOp(operation string, outcome model.Outcome) model.Outcome {
	metrics.RecordOperation(operation, string(outcome.Status))
	return outcome
}

func (o *Orchestrator) logSummary(sku string, result SyncResult) {
	if o.logger == nil {
		return
	}
	failed := 0
	for _, outcome := range []model.Outcome{
		result.FieldUpdates,
		result.ProductTitleUpdate,
		result.DefaultPriceUpdate,
		result.MetafieldUpdate,
		result.InventoryUpdate,
	} {
		if outcome.Status == model.StatusFailed {
			failed++
		}
	}
	for _, outcome := range result.PriceListUpdates {
		if outcome.Status == model.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		o.logger.LogWarning(fmt.Sprintf("sync completed with failures sku=%s failed_operations=%d", sku, failed))
		return
	}
	o.logger.LogSuccess(fmt.Sprintf("sync completed sku=%s", sku))
}
