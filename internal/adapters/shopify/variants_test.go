package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShopify dispatches GraphQL variant searches and REST variant reads
// the way the Admin API does, so resolution can be exercised end to end.
func fakeShopify(t *testing.T, variantJSON string, searchNodes string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/graphql.json"):
			writeGraphQLData(t, w, `{"productVariants": {"nodes": `+searchNodes+`}}`)
		case strings.Contains(r.URL.Path, "/variants/"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(variantJSON))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestResolveVariantBySKU(t *testing.T) {
	c := newTestClient(t, fakeShopify(t,
		`{"variant": {"id": 111, "sku": "A-1", "price": "99.00", "inventory_item_id": 555}}`,
		`[{"id": "gid://shopify/ProductVariant/111", "sku": "A-1", "product": {"id": "gid://shopify/Product/222"}}]`,
	))

	handle, err := c.ResolveVariantBySKU(context.Background(), "A-1")
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/ProductVariant/111", handle.VariantGID)
	assert.Equal(t, "gid://shopify/Product/222", handle.ProductGID)
	assert.Equal(t, int64(111), handle.VariantID)
	assert.Equal(t, int64(222), handle.ProductID)
	assert.Equal(t, int64(555), handle.InventoryItemID)
}

func TestResolveVariantBySKUNotFound(t *testing.T) {
	c := newTestClient(t, fakeShopify(t, `{}`, `[]`))

	_, err := c.ResolveVariantBySKU(context.Background(), "MISSING")
	var notFound *VariantNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "MISSING", notFound.SKU)
	assert.Equal(t, "Variant with SKU MISSING not found", notFound.Error())
}

func TestResolveVariantBySKURestFailureIsNotNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/graphql.json") {
			writeGraphQLData(t, w, `{"productVariants": {"nodes": [{"id": "gid://shopify/ProductVariant/111", "sku": "A-1", "product": {"id": "gid://shopify/Product/222"}}]}}`)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.ResolveVariantBySKU(context.Background(), "A-1")
	require.Error(t, err)
	var notFound *VariantNotFoundError
	assert.False(t, errors.As(err, &notFound))
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestVariantPricing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variant": {"id": 111, "price": "120.50", "compare_at_price": "150.00"}}`))
	}))

	price, compareAt, err := c.VariantPricing(context.Background(), 111)
	require.NoError(t, err)
	assert.Equal(t, 120.5, price)
	require.NotNil(t, compareAt)
	assert.Equal(t, 150.0, *compareAt)
}

func TestVariantPricingNoCompareAt(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variant": {"id": 111, "price": "120.50", "compare_at_price": null}}`))
	}))

	price, compareAt, err := c.VariantPricing(context.Background(), 111)
	require.NoError(t, err)
	assert.Equal(t, 120.5, price)
	assert.Nil(t, compareAt)
}

func TestUpdateVariantDefaultPricePayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variant": {"id": 111}}`))
	}))

	compareAt := 150.0
	require.NoError(t, c.UpdateVariantDefaultPrice(context.Background(), 111, 120.5, &compareAt))

	variant := got["variant"].(map[string]any)
	assert.Equal(t, "120.50", variant["price"])
	assert.Equal(t, "150.00", variant["compare_at_price"])
}

func TestUpdateVariantFieldsOnlySendsPresent(t *testing.T) {
	var got map[string]any
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variant": {"id": 111}}`))
	}))

	require.NoError(t, c.UpdateVariantFields(context.Background(), 111, "New Title", ""))
	require.Equal(t, 1, calls)
	variant := got["variant"].(map[string]any)
	assert.Equal(t, "New Title", variant["title"])
	assert.NotContains(t, variant, "barcode")

	// Both empty never touches the network.
	require.NoError(t, c.UpdateVariantFields(context.Background(), 111, "", "  "))
	assert.Equal(t, 1, calls)
}

func TestNumericID(t *testing.T) {
	id, err := numericID("gid://shopify/ProductVariant/123")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	_, err = numericID("gid://shopify/ProductVariant/abc")
	require.Error(t, err)

	_, err = numericID("")
	require.Error(t, err)
}
