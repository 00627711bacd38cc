package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is an optional numeric field as Airtable sends it: absent, null,
// empty string, integer, float, or a number inside a string. Anything that
// does not parse normalizes to absent instead of failing the request.
type Number struct {
	Value float64
	Valid bool
}

func NumberOf(value float64) Number {
	return Number{Value: value, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number{Value: f, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*n = Number{Value: f, Valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// MarketKey identifies one of the supported Airtable market columns.
type MarketKey string

const (
	MarketUAE     MarketKey = "UAE"
	MarketAsia    MarketKey = "Asia"
	MarketAmerica MarketKey = "America"
)

// Markets is the fixed iteration order used whenever per-market results
// must be deterministic.
var Markets = []MarketKey{MarketUAE, MarketAsia, MarketAmerica}

var marketDisplayNames = map[MarketKey]string{
	MarketUAE:     "United Arab Emirates",
	MarketAsia:    "Asia Market",
	MarketAmerica: "America & Australia Market",
}

// DisplayName returns the Shopify market name the key maps to, or "" for
// an unknown key.
func (m MarketKey) DisplayName() string {
	return marketDisplayNames[m]
}

// PriceTarget is the desired price for one market. CompareAt is optional.
type PriceTarget struct {
	Price     Number
	CompareAt Number
}

// WebhookPayload mirrors the raw Airtable webhook body. Field names are
// the spreadsheet column names verbatim.
type WebhookPayload struct {
	SKU          string `json:"SKU"`
	UAEPrice     Number `json:"UAE price"`
	AsiaPrice    Number `json:"Asia Price"`
	AmericaPrice Number `json:"America Price"`
	UAECompareAt Number `json:"UAE Comparison Price"`
	Quantity     Number `json:"Qty given in shopify"`
	Title        string `json:"Title"`
	Barcode      string `json:"Barcode"`
	Size         string `json:"Size"`
}

// SyncRecord is the normalized form the engine works with. Prices holds an
// entry only for markets whose target price is present.
type SyncRecord struct {
	SKU      string
	Prices   map[MarketKey]PriceTarget
	Quantity Number
	Title    string
	Barcode  string
	Size     string
}

// Record normalizes the raw payload into a SyncRecord. Compare-at prices
// currently only flow for the UAE market, matching the sheet layout.
func (p WebhookPayload) Record() SyncRecord {
	record := SyncRecord{
		SKU:      strings.TrimSpace(p.SKU),
		Prices:   make(map[MarketKey]PriceTarget),
		Quantity: p.Quantity,
		Title:    strings.TrimSpace(p.Title),
		Barcode:  strings.TrimSpace(p.Barcode),
		Size:     strings.TrimSpace(p.Size),
	}
	if p.UAEPrice.Valid {
		record.Prices[MarketUAE] = PriceTarget{Price: p.UAEPrice, CompareAt: p.UAECompareAt}
	}
	if p.AsiaPrice.Valid {
		record.Prices[MarketAsia] = PriceTarget{Price: p.AsiaPrice}
	}
	if p.AmericaPrice.Valid {
		record.Prices[MarketAmerica] = PriceTarget{Price: p.AmericaPrice}
	}
	return record
}
