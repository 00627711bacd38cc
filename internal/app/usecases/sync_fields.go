package usecases

import (
	"context"
	"fmt"

	"airtable-shopify-sync/internal/adapters/shopify"
	"airtable-shopify-sync/internal/domain/model"
	"airtable-shopify-sync/internal/logging"
)

const (
	metafieldNamespace = "custom"
	metafieldSizeKey   = "size"
)

type VariantService interface {
	VariantPricing(ctx context.Context, variantID int64) (float64, *float64, error)
	UpdateVariantDefaultPrice(ctx context.Context, variantID int64, price float64, compareAt *float64) error
	UpdateVariantFields(ctx context.Context, variantID int64, title string, barcode string) error
	UpdateProductTitle(ctx context.Context, productID int64, title string) error
	SetVariantMetafield(ctx context.Context, ownerGID string, namespace string, key string, value string) error
	LocationID(ctx context.Context) (int64, error)
	SetInventoryLevel(ctx context.Context, inventoryItemID int64, locationID int64, quantity int) error
}

// FieldUpdater applies the non-price-list updates of a sync run: variant
// fields, product title, default price, the size metafield, and the
// absolute inventory level. Every method returns a tagged outcome and
// never propagates an error upward.
type FieldUpdater struct {
	client VariantService
	logger logging.LoggerService
}

func NewFieldUpdater(client VariantService, logger logging.LoggerService) *FieldUpdater {
	return &FieldUpdater{
		client: client,
		logger: logger,
	}
}

// UpdateFields writes title and/or barcode onto the variant; with neither
// present no call is made.
func (u *FieldUpdater) UpdateFields(ctx context.Context, variant shopify.VariantHandle, title string, barcode string) model.Outcome {
	if title == "" && barcode == "" {
		return model.Noop()
	}
	if err := u.client.UpdateVariantFields(ctx, variant.VariantID, title, barcode); err != nil {
		u.logError("variant fields update failed", err)
		return model.Failed(err.Error())
	}
	return model.Applied()
}

// UpdateProductTitle renames the owning product when a title is present.
func (u *FieldUpdater) UpdateProductTitle(ctx context.Context, variant shopify.VariantHandle, title string) model.Outcome {
	if title == "" {
		return model.Noop()
	}
	if err := u.client.UpdateProductTitle(ctx, variant.ProductID, title); err != nil {
		u.logError("product title update failed", err)
		return model.Failed(err.Error())
	}
	return model.Applied()
}

// UpdateDefaultPrice writes the variant's base price, reading the stored
// value first and skipping an identical target.
func (u *FieldUpdater) UpdateDefaultPrice(ctx context.Context, variant shopify.VariantHandle, target model.PriceTarget) model.Outcome {
	if !target.Price.Valid {
		return model.Noop()
	}

	price, compareAt, err := u.client.VariantPricing(ctx, variant.VariantID)
	if err != nil {
		u.logError("reading default price failed", err)
		return model.Failed(err.Error())
	}
	if price == target.Price.Value &&
		(!target.CompareAt.Valid || (compareAt != nil && *compareAt == target.CompareAt.Value)) {
		return model.Skipped(model.SkipUnchanged)
	}

	var targetCompareAt *float64
	if target.CompareAt.Valid {
		value := target.CompareAt.Value
		targetCompareAt = &value
	}
	if err := u.client.UpdateVariantDefaultPrice(ctx, variant.VariantID, target.Price.Value, targetCompareAt); err != nil {
		u.logError("default price update failed", err)
		return model.Failed(err.Error())
	}
	return model.Applied()
}

// SetSizeAttribute upserts the custom.size metafield on the variant.
func (u *FieldUpdater) SetSizeAttribute(ctx context.Context, variant shopify.VariantHandle, size string) model.Outcome {
	if size == "" {
		return model.Noop()
	}
	if err := u.client.SetVariantMetafield(ctx, variant.VariantGID, metafieldNamespace, metafieldSizeKey, size); err != nil {
		u.logError("size metafield update failed", err)
		return model.Failed(err.Error())
	}
	return model.Applied()
}

// SetInventory sets the absolute available quantity at the resolved
// location.
func (u *FieldUpdater) SetInventory(ctx context.Context, variant shopify.VariantHandle, quantity model.Number) model.Outcome {
	if !quantity.Valid {
		return model.Noop()
	}
	qty := int(quantity.Value)
	if qty < 0 {
		return model.Failed(fmt.Sprintf("inventory quantity must be non-negative, got %d", qty))
	}

	locationID, err := u.client.LocationID(ctx)
	if err != nil {
		u.logError("inventory location resolution failed", err)
		return model.Failed(err.Error())
	}
	if err := u.client.SetInventoryLevel(ctx, variant.InventoryItemID, locationID, qty); err != nil {
		u.logError("inventory update failed", err)
		return model.Failed(err.Error())
	}
	return model.Applied()
}

func (u *FieldUpdater) logError(message string, err error) {
	if u.logger == nil {
		return
	}
	u.logger.LogError(message, err)
}
