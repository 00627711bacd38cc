package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airtable-shopify-sync/internal/adapters/shopify"
	"airtable-shopify-sync/internal/domain/model"
)

type fakeResolver struct {
	handle shopify.VariantHandle
	err    error
}

func (r *fakeResolver) ResolveVariantBySKU(ctx context.Context, sku string) (shopify.VariantHandle, error) {
	return r.handle, r.err
}

func newTestOrchestrator(resolver *fakeResolver, svc *fakeVariantService, directory *fakeDirectory, prices *fakePrices) SyncService {
	return NewOrchestrator(
		resolver,
		NewFieldUpdater(svc, nil),
		NewPriceSynchronizer(directory, prices, nil),
		nil,
	)
}

func TestRunResolutionFailurePropagates(t *testing.T) {
	notFound := &shopify.VariantNotFoundError{SKU: "MISSING"}
	o := newTestOrchestrator(
		&fakeResolver{err: notFound},
		&fakeVariantService{},
		&fakeDirectory{},
		&fakePrices{},
	)

	_, err := o.Run(context.Background(), model.SyncRecord{SKU: "MISSING"})
	var target *shopify.VariantNotFoundError
	require.ErrorAs(t, err, &target)
}

func TestRunAggregatesOutcomes(t *testing.T) {
	svc := &fakeVariantService{price: 100}
	prices := &fakePrices{}
	o := newTestOrchestrator(
		&fakeResolver{handle: testVariant()},
		svc,
		&fakeDirectory{lists: allMarketLists()},
		prices,
	)

	record := model.SyncRecord{
		SKU:   "A-1",
		Title: "New Title",
		Size:  "M",
		Prices: map[model.MarketKey]model.PriceTarget{
			model.MarketUAE:  {Price: model.NumberOf(120), CompareAt: model.NumberOf(150)},
			model.MarketAsia: {Price: model.NumberOf(80)},
		},
		Quantity: model.NumberOf(7),
	}

	result, err := o.Run(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, "gid://shopify/ProductVariant/111", result.VariantGID)
	assert.Equal(t, "gid://shopify/Product/222", result.ProductGID)
	assert.Equal(t, model.StatusApplied, result.FieldUpdates.Status)
	assert.Equal(t, model.StatusApplied, result.ProductTitleUpdate.Status)
	assert.Equal(t, model.StatusApplied, result.DefaultPriceUpdate.Status)
	assert.Equal(t, model.StatusApplied, result.MetafieldUpdate.Status)
	assert.Equal(t, model.StatusApplied, result.InventoryUpdate.Status)

	require.Len(t, result.PriceListUpdates, 2)
	assert.Equal(t, model.StatusApplied, result.PriceListUpdates[model.MarketUAE].Status)
	assert.Equal(t, model.StatusApplied, result.PriceListUpdates[model.MarketAsia].Status)
	assert.Len(t, prices.upserts, 2)
}

func TestRunMetafieldFailureDoesNotBlockSiblings(t *testing.T) {
	svc := &fakeVariantService{price: 100, metafieldErr: errors.New("metafield rejected")}
	prices := &fakePrices{}
	o := newTestOrchestrator(
		&fakeResolver{handle: testVariant()},
		svc,
		&fakeDirectory{lists: allMarketLists()},
		prices,
	)

	record := model.SyncRecord{
		SKU:      "A-1",
		Size:     "M",
		Quantity: model.NumberOf(7),
		Prices: map[model.MarketKey]model.PriceTarget{
			model.MarketUAE: {Price: model.NumberOf(120)},
		},
	}

	result, err := o.Run(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, model.StatusFailed, result.MetafieldUpdate.Status)
	assert.Equal(t, model.StatusApplied, result.InventoryUpdate.Status)
	assert.Equal(t, model.StatusApplied, result.PriceListUpdates[model.MarketUAE].Status)
}

func TestRunSparsePayloadMostlyNoop(t *testing.T) {
	svc := &fakeVariantService{}
	prices := &fakePrices{}
	directory := &fakeDirectory{lists: allMarketLists()}
	o := newTestOrchestrator(&fakeResolver{handle: testVariant()}, svc, directory, prices)

	result, err := o.Run(context.Background(), model.SyncRecord{SKU: "A-1"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusNoop, result.FieldUpdates.Status)
	assert.Equal(t, model.StatusNoop, result.ProductTitleUpdate.Status)
	assert.Equal(t, model.StatusNoop, result.DefaultPriceUpdate.Status)
	assert.Equal(t, model.StatusNoop, result.MetafieldUpdate.Status)
	assert.Equal(t, model.StatusNoop, result.InventoryUpdate.Status)
	assert.Empty(t, result.PriceListUpdates)
	assert.Equal(t, 0, directory.calls)
}

func TestRunSingleMarketOnlyTouchesThatList(t *testing.T) {
	svc := &fakeVariantService{}
	prices := &fakePrices{}
	o := newTestOrchestrator(
		&fakeResolver{handle: testVariant()},
		svc,
		&fakeDirectory{lists: allMarketLists()},
		prices,
	)

	record := model.SyncRecord{
		SKU: "A-1",
		Prices: map[model.MarketKey]model.PriceTarget{
			model.MarketAmerica: {Price: model.NumberOf(35)},
		},
	}

	result, err := o.Run(context.Background(), record)
	require.NoError(t, err)

	require.Len(t, result.PriceListUpdates, 1)
	assert.Equal(t, model.StatusApplied, result.PriceListUpdates[model.MarketAmerica].Status)
	require.Len(t, prices.upserts, 1)
	assert.Equal(t, "gid://shopify/PriceList/30", prices.upserts[0].priceListID)
}
