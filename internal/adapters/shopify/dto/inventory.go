package dto

type RestLocation struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Primary bool   `json:"primary,omitempty"`
	Active  bool   `json:"active,omitempty"`
}

type LocationsEnvelope struct {
	Locations []RestLocation `json:"locations,omitempty"`
}

type RestInventoryLevel struct {
	InventoryItemID int64 `json:"inventory_item_id,omitempty"`
	LocationID      int64 `json:"location_id,omitempty"`
	Available       int   `json:"available,omitempty"`
}

type InventoryLevelEnvelope struct {
	InventoryLevel RestInventoryLevel `json:"inventory_level"`
}
