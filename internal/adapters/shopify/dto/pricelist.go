package dto

type PriceListNode struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type CatalogNode struct {
	ID        string         `json:"id,omitempty"`
	Title     string         `json:"title,omitempty"`
	Status    string         `json:"status,omitempty"`
	PriceList *PriceListNode `json:"priceList,omitempty"`
}

type CatalogsQueryData struct {
	Catalogs struct {
		Nodes []CatalogNode `json:"nodes,omitempty"`
	} `json:"catalogs"`
}

type PriceListPriceNode struct {
	Variant struct {
		ID string `json:"id,omitempty"`
	} `json:"variant,omitempty"`
	Price          MoneyV2  `json:"price,omitempty"`
	CompareAtPrice *MoneyV2 `json:"compareAtPrice,omitempty"`
}

type PriceListPricesData struct {
	PriceList *struct {
		Prices struct {
			Nodes    []PriceListPriceNode `json:"nodes,omitempty"`
			PageInfo ShopifyPageInfo      `json:"pageInfo,omitempty"`
		} `json:"prices,omitempty"`
	} `json:"priceList,omitempty"`
}

type PriceListFixedPricesAddData struct {
	PriceListFixedPricesAdd struct {
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"priceListFixedPricesAdd"`
}
