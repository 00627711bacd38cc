package dto

type VariantSearchData struct {
	ProductVariants struct {
		Nodes []struct {
			ID      string `json:"id,omitempty"`
			SKU     string `json:"sku,omitempty"`
			Product struct {
				ID string `json:"id,omitempty"`
			} `json:"product,omitempty"`
		} `json:"nodes,omitempty"`
	} `json:"productVariants"`
}

// RestVariant mirrors the REST Admin variant resource; only the fields
// this service reads or writes.
type RestVariant struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title,omitempty"`
	SKU             string  `json:"sku,omitempty"`
	Barcode         string  `json:"barcode,omitempty"`
	Price           string  `json:"price,omitempty"`
	CompareAtPrice  *string `json:"compare_at_price,omitempty"`
	InventoryItemID int64   `json:"inventory_item_id,omitempty"`
}

type VariantEnvelope struct {
	Variant RestVariant `json:"variant"`
}

type RestProduct struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
}

type ProductEnvelope struct {
	Product RestProduct `json:"product"`
}

type MetafieldsSetData struct {
	MetafieldsSet struct {
		Metafields []struct {
			ID        string `json:"id,omitempty"`
			Namespace string `json:"namespace,omitempty"`
			Key       string `json:"key,omitempty"`
			Value     string `json:"value,omitempty"`
			Type      string `json:"type,omitempty"`
		} `json:"metafields,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"metafieldsSet"`
}
