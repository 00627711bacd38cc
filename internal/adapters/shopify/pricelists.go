package shopify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"airtable-shopify-sync/internal/adapters/shopify/dto"
)

const (
	catalogPageSize        = 20
	priceListPricePageSize = 250
)

// PriceListRef identifies one market price list and the currency its
// prices are denominated in.
type PriceListRef struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
}

// PriceListDirectory caches the mapping from Shopify market catalog title
// to its price list. The cache is replaced atomically on refresh; readers
// never observe a half-built mapping.
type PriceListDirectory struct {
	client *Client

	mu     sync.RWMutex
	lists  map[string]PriceListRef
	loaded bool
}

func NewPriceListDirectory(client *Client) *PriceListDirectory {
	return &PriceListDirectory{client: client}
}

// Get returns the catalog-title → price-list mapping, enumerating the
// store's market catalogs on first use or when forceRefresh is set. Only
// ACTIVE catalogs with an attached price list are recorded.
func (d *PriceListDirectory) Get(ctx context.Context, forceRefresh bool) (map[string]PriceListRef, error) {
	if !forceRefresh {
		d.mu.RLock()
		if d.loaded {
			lists := d.lists
			d.mu.RUnlock()
			return lists, nil
		}
		d.mu.RUnlock()
	}

	lists, err := d.enumerate(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.lists = lists
	d.loaded = true
	d.mu.Unlock()
	return lists, nil
}

func (d *PriceListDirectory) enumerate(ctx context.Context) (map[string]PriceListRef, error) {
	query := `
	query marketCatalogs($first: Int!) {
		catalogs(first: $first, type: MARKET) {
			nodes {
				id
				title
				status
				priceList { id name currency }
			}
		}
	}`

	lists := make(map[string]PriceListRef)

	var data dto.CatalogsQueryData
	err := d.client.graphqlRequest(ctx, query, map[string]any{"first": catalogPageSize}, &data)
	if err != nil {
		// A response without the expected shape is an enumeration hiccup,
		// not a reason to fail the whole run.
		if errors.Is(err, ErrEmptyData) {
			d.client.logWarning("shopify catalog enumeration returned no data")
			return lists, nil
		}
		return nil, err
	}

	for _, catalog := range data.Catalogs.Nodes {
		if !strings.EqualFold(strings.TrimSpace(catalog.Status), "ACTIVE") {
			continue
		}
		if catalog.PriceList == nil || strings.TrimSpace(catalog.PriceList.ID) == "" {
			continue
		}
		title := strings.TrimSpace(catalog.Title)
		if title == "" {
			continue
		}
		lists[title] = PriceListRef{
			ID:       strings.TrimSpace(catalog.PriceList.ID),
			Currency: strings.TrimSpace(catalog.PriceList.Currency),
		}
	}

	return lists, nil
}

// FixedPrice is the stored per-market price of one variant.
type FixedPrice struct {
	Amount    float64
	CompareAt *float64
	Currency  string
}

// FixedPriceForVariant scans the price list for the variant's fixed price
// entry. A nil result with nil error means the list has no entry for the
// variant yet.
func (c *Client) FixedPriceForVariant(ctx context.Context, priceListID string, variantGID string) (*FixedPrice, error) {
	priceListID = strings.TrimSpace(priceListID)
	if priceListID == "" {
		return nil, errors.New("shopify price list id is required")
	}
	variantGID = strings.TrimSpace(variantGID)
	if variantGID == "" {
		return nil, errors.New("shopify variant id is required")
	}

	query := `
	query priceListPrices($id: ID!, $first: Int!, $after: String) {
		priceList(id: $id) {
			prices(first: $first, after: $after) {
				nodes {
					variant { id }
					price { amount currencyCode }
					compareAtPrice { amount currencyCode }
				}
				pageInfo { hasNextPage endCursor }
			}
		}
	}`

	after := ""
	for {
		variables := map[string]any{
			"id":    priceListID,
			"first": priceListPricePageSize,
		}
		if after != "" {
			variables["after"] = after
		}
		var data dto.PriceListPricesData
		if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
			return nil, err
		}
		if data.PriceList == nil {
			return nil, nil
		}
		for _, node := range data.PriceList.Prices.Nodes {
			if !strings.EqualFold(strings.TrimSpace(node.Variant.ID), variantGID) {
				continue
			}
			amount, err := strconv.ParseFloat(strings.TrimSpace(node.Price.Amount), 64)
			if err != nil {
				return nil, fmt.Errorf("shopify price list %s returned bad amount %q: %w", priceListID, node.Price.Amount, err)
			}
			fixed := &FixedPrice{
				Amount:   amount,
				Currency: strings.TrimSpace(node.Price.CurrencyCode),
			}
			if node.CompareAtPrice != nil && strings.TrimSpace(node.CompareAtPrice.Amount) != "" {
				compareAt, err := strconv.ParseFloat(strings.TrimSpace(node.CompareAtPrice.Amount), 64)
				if err != nil {
					return nil, fmt.Errorf("shopify price list %s returned bad compare-at %q: %w", priceListID, node.CompareAtPrice.Amount, err)
				}
				fixed.CompareAt = &compareAt
			}
			return fixed, nil
		}
		if !data.PriceList.Prices.PageInfo.HasNextPage {
			break
		}
		after = data.PriceList.Prices.PageInfo.EndCursor
		if strings.TrimSpace(after) == "" {
			break
		}
	}

	return nil, nil
}

// UpsertFixedPrice adds or replaces the variant's fixed price on the
// price list, in the list's currency. userErrors come back as
// *UserErrorsError.
func (c *Client) UpsertFixedPrice(ctx context.Context, priceListID string, variantGID string, amount float64, compareAt *float64, currency string) error {
	priceListID = strings.TrimSpace(priceListID)
	currency = strings.TrimSpace(currency)
	if priceListID == "" || currency == "" {
		return errors.New("shopify price list id and currency are required")
	}

	query := `
	mutation priceListFixedPricesAdd($priceListId: ID!, $prices: [PriceListPriceInput!]!) {
		priceListFixedPricesAdd(priceListId: $priceListId, prices: $prices) {
			userErrors { field code message }
		}
	}`

	priceInput := map[string]any{
		"variantId": variantGID,
		"price": map[string]any{
			"amount":       formatMoneyAmount(amount),
			"currencyCode": currency,
		},
	}
	if compareAt != nil {
		priceInput["compareAtPrice"] = map[string]any{
			"amount":       formatMoneyAmount(*compareAt),
			"currencyCode": currency,
		}
	}

	var data dto.PriceListFixedPricesAddData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"priceListId": priceListID,
		"prices":      []map[string]any{priceInput},
	}, &data)
	if err != nil {
		return err
	}
	if err := userErrorsToError("priceListFixedPricesAdd", data.PriceListFixedPricesAdd.UserErrors); err != nil {
		return err
	}

	c.logSuccess(fmt.Sprintf("shopify fixed price updated variant=%s amount=%s %s", variantGID, formatMoneyAmount(amount), currency))
	return nil
}
