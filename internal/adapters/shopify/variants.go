package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"airtable-shopify-sync/internal/adapters/shopify/dto"
)

// VariantHandle carries every identifier a sync run needs once a SKU has
// resolved: the GraphQL gids, their numeric REST forms, and the linked
// inventory item. Resolved per request, never cached.
type VariantHandle struct {
	VariantGID      string
	ProductGID      string
	VariantID       int64
	ProductID       int64
	InventoryItemID int64
}

// ResolveVariantBySKU maps a SKU to its VariantHandle. Zero matches yield
// *VariantNotFoundError; the follow-up REST fetch for the inventory item
// id failing is a transport error, not a not-found.
func (c *Client) ResolveVariantBySKU(ctx context.Context, sku string) (VariantHandle, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return VariantHandle{}, errors.New("shopify sku is required")
	}

	query := `
	query productVariantBySku($first: Int!, $query: String!) {
		productVariants(first: $first, query: $query) {
			nodes { id sku product { id } }
		}
	}`

	var data dto.VariantSearchData
	if err := c.graphqlRequest(ctx, query, map[string]any{
		"first": 1,
		"query": buildSearchQuery("sku", sku),
	}, &data); err != nil {
		return VariantHandle{}, err
	}
	if len(data.ProductVariants.Nodes) == 0 {
		return VariantHandle{}, &VariantNotFoundError{SKU: sku}
	}

	node := data.ProductVariants.Nodes[0]
	variantGID := strings.TrimSpace(node.ID)
	productGID := strings.TrimSpace(node.Product.ID)

	variantID, err := numericID(variantGID)
	if err != nil {
		return VariantHandle{}, fmt.Errorf("shopify variant gid %q: %w", variantGID, err)
	}
	productID, err := numericID(productGID)
	if err != nil {
		return VariantHandle{}, fmt.Errorf("shopify product gid %q: %w", productGID, err)
	}

	// The variant search schema does not expose inventory_item_id; one
	// REST fetch fills it in.
	var envelope dto.VariantEnvelope
	if err := c.restGet(ctx, fmt.Sprintf("variants/%d.json", variantID), &envelope); err != nil {
		return VariantHandle{}, err
	}
	if envelope.Variant.InventoryItemID == 0 {
		return VariantHandle{}, fmt.Errorf("shopify variant %d has no inventory item", variantID)
	}

	return VariantHandle{
		VariantGID:      variantGID,
		ProductGID:      productGID,
		VariantID:       variantID,
		ProductID:       productID,
		InventoryItemID: envelope.Variant.InventoryItemID,
	}, nil
}

// VariantPricing reads the variant's current default price and compare-at
// price from the REST resource.
func (c *Client) VariantPricing(ctx context.Context, variantID int64) (float64, *float64, error) {
	var envelope dto.VariantEnvelope
	if err := c.restGet(ctx, fmt.Sprintf("variants/%d.json", variantID), &envelope); err != nil {
		return 0, nil, err
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(envelope.Variant.Price), 64)
	if err != nil {
		return 0, nil, fmt.Errorf("shopify variant %d returned bad price %q: %w", variantID, envelope.Variant.Price, err)
	}

	var compareAt *float64
	if envelope.Variant.CompareAtPrice != nil && strings.TrimSpace(*envelope.Variant.CompareAtPrice) != "" {
		value, err := strconv.ParseFloat(strings.TrimSpace(*envelope.Variant.CompareAtPrice), 64)
		if err != nil {
			return 0, nil, fmt.Errorf("shopify variant %d returned bad compare-at %q: %w", variantID, *envelope.Variant.CompareAtPrice, err)
		}
		compareAt = &value
	}

	return price, compareAt, nil
}

// UpdateVariantDefaultPrice writes the variant's base price (and
// optionally its compare-at price) via the REST resource.
func (c *Client) UpdateVariantDefaultPrice(ctx context.Context, variantID int64, price float64, compareAt *float64) error {
	variant := map[string]any{
		"id":    variantID,
		"price": formatMoneyAmount(price),
	}
	if compareAt != nil {
		variant["compare_at_price"] = formatMoneyAmount(*compareAt)
	}

	err := c.restWrite(ctx, http.MethodPut, fmt.Sprintf("variants/%d.json", variantID), map[string]any{"variant": variant}, nil)
	if err != nil {
		return err
	}
	c.logSuccess(fmt.Sprintf("shopify default price updated variant=%d price=%s", variantID, formatMoneyAmount(price)))
	return nil
}

// UpdateVariantFields updates title and/or barcode on the variant, only
// sending the fields that are present. Both empty is a no-op.
func (c *Client) UpdateVariantFields(ctx context.Context, variantID int64, title string, barcode string) error {
	title = strings.TrimSpace(title)
	barcode = strings.TrimSpace(barcode)
	if title == "" && barcode == "" {
		return nil
	}

	variant := map[string]any{"id": variantID}
	if title != "" {
		variant["title"] = title
	}
	if barcode != "" {
		variant["barcode"] = barcode
	}

	return c.restWrite(ctx, http.MethodPut, fmt.Sprintf("variants/%d.json", variantID), map[string]any{"variant": variant}, nil)
}

// UpdateProductTitle renames the owning product, a distinct resource from
// the variant.
func (c *Client) UpdateProductTitle(ctx context.Context, productID int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("shopify product title is required")
	}

	payload := map[string]any{
		"product": map[string]any{
			"id":    productID,
			"title": title,
		},
	}
	return c.restWrite(ctx, http.MethodPut, fmt.Sprintf("products/%d.json", productID), payload, nil)
}

// numericID extracts the trailing numeric id from a gid, e.g.
// gid://shopify/ProductVariant/123 → 123.
func numericID(gid string) (int64, error) {
	gid = strings.TrimSpace(gid)
	if gid == "" {
		return 0, errors.New("empty gid")
	}
	idx := strings.LastIndex(gid, "/")
	tail := gid
	if idx >= 0 {
		tail = gid[idx+1:]
	}
	id, err := strconv.ParseInt(tail, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("gid has no numeric tail: %w", err)
	}
	return id, nil
}
