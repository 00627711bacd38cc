package usecases

import (
	"context"
	"fmt"

	"airtable-shopify-sync/internal/adapters/shopify"
	"airtable-shopify-sync/internal/domain/model"
	"airtable-shopify-sync/internal/logging"
)

type PriceListDirectoryService interface {
	Get(ctx context.Context, forceRefresh bool) (map[string]shopify.PriceListRef, error)
}

type FixedPriceService interface {
	FixedPriceForVariant(ctx context.Context, priceListID string, variantGID string) (*shopify.FixedPrice, error)
	UpsertFixedPrice(ctx context.Context, priceListID string, variantGID string, amount float64, compareAt *float64, currency string) error
}

// PriceSynchronizer applies per-market fixed prices with read-before-write
// change detection: Shopify has no no-op upsert, every write counts toward
// rate limits and the store changelog, so bit-identical targets are
// skipped instead of rewritten.
type PriceSynchronizer struct {
	directory PriceListDirectoryService
	prices    FixedPriceService
	logger    logging.LoggerService
}

func NewPriceSynchronizer(directory PriceListDirectoryService, prices FixedPriceService, logger logging.LoggerService) *PriceSynchronizer {
	return &PriceSynchronizer{
		directory: directory,
		prices:    prices,
		logger:    logger,
	}
}

// Sync walks the markets in fixed order and returns one tagged outcome
// per market present in targets. A market without a price list is a skip,
// not an error; one market's failure never blocks the next.
func (s *PriceSynchronizer) Sync(ctx context.Context, variant shopify.VariantHandle, targets map[model.MarketKey]model.PriceTarget) map[model.MarketKey]model.Outcome {
	outcomes := make(map[model.MarketKey]model.Outcome, len(targets))
	if len(targets) == 0 {
		return outcomes
	}

	lists, err := s.directory.Get(ctx, false)
	if err != nil {
		if s.logger != nil {
			s.logger.LogError("price list directory unavailable", err)
		}
		for key := range targets {
			outcomes[key] = model.Failed(err.Error())
		}
		return outcomes
	}

	for _, key := range model.Markets {
		target, ok := targets[key]
		if !ok || !target.Price.Valid {
			continue
		}
		outcomes[key] = s.syncMarket(ctx, variant, key, target, lists)
	}

	return outcomes
}

func (s *PriceSynchronizer) syncMarket(ctx context.Context, variant shopify.VariantHandle, key model.MarketKey, target model.PriceTarget, lists map[string]shopify.PriceListRef) model.Outcome {
	displayName := key.DisplayName()
	if displayName == "" {
		return model.Skipped(model.SkipNoPriceList)
	}
	list, ok := lists[displayName]
	if !ok {
		if s.logger != nil {
			s.logger.LogWarning(fmt.Sprintf("no price list for market %s", key))
		}
		return model.Skipped(model.SkipNoPriceList)
	}

	stored, err := s.prices.FixedPriceForVariant(ctx, list.ID, variant.VariantGID)
	if err != nil {
		if s.logger != nil {
			s.logger.LogError(fmt.Sprintf("reading stored price failed market=%s", key), err)
		}
		return model.Failed(err.Error())
	}
	if priceUnchanged(stored, target) {
		return model.Skipped(model.SkipUnchanged)
	}

	var compareAt *float64
	if target.CompareAt.Valid {
		value := target.CompareAt.Value
		compareAt = &value
	}
	if err := s.prices.UpsertFixedPrice(ctx, list.ID, variant.VariantGID, target.Price.Value, compareAt, list.Currency); err != nil {
		if s.logger != nil {
			s.logger.LogError(fmt.Sprintf("fixed price upsert failed market=%s", key), err)
		}
		return model.Failed(err.Error())
	}
	return model.Applied()
}

// priceUnchanged reports whether the stored entry already equals the
// target at the numeric level. When the target carries no compare-at, the
// stored compare-at is left out of the comparison: the write would not
// touch it.
func priceUnchanged(stored *shopify.FixedPrice, target model.PriceTarget) bool {
	if stored == nil {
		return false
	}
	if stored.Amount != target.Price.Value {
		return false
	}
	if !target.CompareAt.Valid {
		return true
	}
	return stored.CompareAt != nil && *stored.CompareAt == target.CompareAt.Value
}
