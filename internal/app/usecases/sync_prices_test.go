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

type fakeDirectory struct {
	lists map[string]shopify.PriceListRef
	err   error
	calls int
}

func (d *fakeDirectory) Get(ctx context.Context, forceRefresh bool) (map[string]shopify.PriceListRef, error) {
	d.calls++
	return d.lists, d.err
}

type upsertCall struct {
	priceListID string
	variantGID  string
	amount      float64
	compareAt   *float64
	currency    string
}

type fakePrices struct {
	stored    map[string]*shopify.FixedPrice // keyed by price list id
	readErr   error
	upsertErr error
	upserts   []upsertCall
}

func (p *fakePrices) FixedPriceForVariant(ctx context.Context, priceListID string, variantGID string) (*shopify.FixedPrice, error) {
	if p.readErr != nil {
		return nil, p.readErr
	}
	return p.stored[priceListID], nil
}

func (p *fakePrices) UpsertFixedPrice(ctx context.Context, priceListID string, variantGID string, amount float64, compareAt *float64, currency string) error {
	p.upserts = append(p.upserts, upsertCall{priceListID, variantGID, amount, compareAt, currency})
	return p.upsertErr
}

func allMarketLists() map[string]shopify.PriceListRef {
	return map[string]shopify.PriceListRef{
		"United Arab Emirates":       {ID: "gid://shopify/PriceList/10", Currency: "AED"},
		"Asia Market":                {ID: "gid://shopify/PriceList/20", Currency: "USD"},
		"America & Australia Market": {ID: "gid://shopify/PriceList/30", Currency: "USD"},
	}
}

func testVariant() shopify.VariantHandle {
	return shopify.VariantHandle{
		VariantGID:      "gid://shopify/ProductVariant/111",
		ProductGID:      "gid://shopify/Product/222",
		VariantID:       111,
		ProductID:       222,
		InventoryItemID: 555,
	}
}

func TestSyncUpsertsChangedPrice(t *testing.T) {
	prices := &fakePrices{
		stored: map[string]*shopify.FixedPrice{
			"gid://shopify/PriceList/10": {Amount: 100, Currency: "AED"},
		},
	}
	s := NewPriceSynchronizer(&fakeDirectory{lists: allMarketLists()}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE: {Price: model.NumberOf(120)},
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, model.StatusApplied, outcomes[model.MarketUAE].Status)
	require.Len(t, prices.upserts, 1)
	call := prices.upserts[0]
	assert.Equal(t, "gid://shopify/PriceList/10", call.priceListID)
	assert.Equal(t, "gid://shopify/ProductVariant/111", call.variantGID)
	assert.Equal(t, 120.0, call.amount)
	assert.Nil(t, call.compareAt)
	assert.Equal(t, "AED", call.currency)
}

func TestSyncSkipsUnchangedPrice(t *testing.T) {
	prices := &fakePrices{
		stored: map[string]*shopify.FixedPrice{
			"gid://shopify/PriceList/10": {Amount: 100, Currency: "AED"},
		},
	}
	s := NewPriceSynchronizer(&fakeDirectory{lists: allMarketLists()}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE: {Price: model.NumberOf(100)},
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, model.StatusSkipped, outcomes[model.MarketUAE].Status)
	assert.Equal(t, model.SkipUnchanged, outcomes[model.MarketUAE].Reason)
	assert.Empty(t, prices.upserts)
}

func TestSyncCompareAtDifferenceForcesWrite(t *testing.T) {
	storedCompareAt := 130.0
	prices := &fakePrices{
		stored: map[string]*shopify.FixedPrice{
			"gid://shopify/PriceList/10": {Amount: 100, CompareAt: &storedCompareAt, Currency: "AED"},
		},
	}
	s := NewPriceSynchronizer(&fakeDirectory{lists: allMarketLists()}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE: {Price: model.NumberOf(100), CompareAt: model.NumberOf(150)},
	})

	assert.Equal(t, model.StatusApplied, outcomes[model.MarketUAE].Status)
	require.Len(t, prices.upserts, 1)
	require.NotNil(t, prices.upserts[0].compareAt)
	assert.Equal(t, 150.0, *prices.upserts[0].compareAt)
}

func TestSyncStoredCompareAtIgnoredWhenTargetHasNone(t *testing.T) {
	storedCompareAt := 130.0
	prices := &fakePrices{
		stored: map[string]*shopify.FixedPrice{
			"gid://shopify/PriceList/10": {Amount: 100, CompareAt: &storedCompareAt, Currency: "AED"},
		},
	}
	s := NewPriceSynchronizer(&fakeDirectory{lists: allMarketLists()}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE: {Price: model.NumberOf(100)},
	})

	assert.Equal(t, model.StatusSkipped, outcomes[model.MarketUAE].Status)
	assert.Empty(t, prices.upserts)
}

func TestSyncSkipsMarketWithoutPriceList(t *testing.T) {
	prices := &fakePrices{}
	s := NewPriceSynchronizer(&fakeDirectory{lists: map[string]shopify.PriceListRef{
		"United Arab Emirates": {ID: "gid://shopify/PriceList/10", Currency: "AED"},
	}}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE:  {Price: model.NumberOf(120)},
		model.MarketAsia: {Price: model.NumberOf(80)},
	})

	assert.Equal(t, model.StatusApplied, outcomes[model.MarketUAE].Status)
	assert.Equal(t, model.StatusSkipped, outcomes[model.MarketAsia].Status)
	assert.Equal(t, model.SkipNoPriceList, outcomes[model.MarketAsia].Reason)
	assert.Len(t, prices.upserts, 1)
}

func TestSyncDirectoryErrorFailsEveryMarket(t *testing.T) {
	prices := &fakePrices{}
	s := NewPriceSynchronizer(&fakeDirectory{err: errors.New("catalogs unavailable")}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE:  {Price: model.NumberOf(120)},
		model.MarketAsia: {Price: model.NumberOf(80)},
	})

	require.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		assert.Equal(t, model.StatusFailed, outcome.Status)
	}
	assert.Empty(t, prices.upserts)
}

func TestSyncReadFailureFailsThatMarketOnly(t *testing.T) {
	prices := &fakePrices{readErr: errors.New("price query failed")}
	s := NewPriceSynchronizer(&fakeDirectory{lists: allMarketLists()}, prices, nil)

	outcomes := s.Sync(context.Background(), testVariant(), map[model.MarketKey]model.PriceTarget{
		model.MarketUAE: {Price: model.NumberOf(120)},
	})

	assert.Equal(t, model.StatusFailed, outcomes[model.MarketUAE].Status)
	assert.Contains(t, outcomes[model.MarketUAE].Detail, "price query failed")
	assert.Empty(t, prices.upserts)
}

func TestSyncNoTargetsNoDirectoryFetch(t *testing.T) {
	directory := &fakeDirectory{lists: allMarketLists()}
	s := NewPriceSynchronizer(directory, &fakePrices{}, nil)

	outcomes := s.Sync(context.Background(), testVariant(), nil)
	assert.Empty(t, outcomes)
	assert.Equal(t, 0, directory.calls)
}
