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

// LocationID resolves the warehouse location used for inventory writes.
// A configured location id always wins; otherwise the store's primary
// location (else its first) is discovered once and cached for the life of
// the process.
func (c *Client) LocationID(ctx context.Context) (int64, error) {
	if configured := strings.TrimSpace(c.config.LocationID); configured != "" {
		id, err := strconv.ParseInt(configured, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("configured shopify location id %q is not numeric: %w", configured, err)
		}
		return id, nil
	}

	c.locationMu.Lock()
	if c.locationID != 0 {
		locationID := c.locationID
		c.locationMu.Unlock()
		return locationID, nil
	}
	c.locationMu.Unlock()

	var envelope dto.LocationsEnvelope
	if err := c.restGet(ctx, "locations.json", &envelope); err != nil {
		return 0, err
	}
	if len(envelope.Locations) == 0 {
		return 0, errors.New("shopify store has no locations")
	}

	chosen := envelope.Locations[0]
	for _, location := range envelope.Locations {
		if location.Primary {
			chosen = location
			break
		}
	}

	c.locationMu.Lock()
	c.locationID = chosen.ID
	c.locationMu.Unlock()

	c.logSuccess(fmt.Sprintf("shopify inventory location resolved id=%d name=%s", chosen.ID, chosen.Name))
	return chosen.ID, nil
}

// SetInventoryLevel sets the absolute available quantity of the inventory
// item at the location. The remote level becomes exactly quantity; this
// is not a delta adjustment.
func (c *Client) SetInventoryLevel(ctx context.Context, inventoryItemID int64, locationID int64, quantity int) error {
	if inventoryItemID == 0 || locationID == 0 {
		return errors.New("shopify inventory item id and location id are required")
	}

	payload := map[string]any{
		"inventory_item_id": inventoryItemID,
		"location_id":       locationID,
		"available":         quantity,
	}

	var envelope dto.InventoryLevelEnvelope
	err := c.restWrite(ctx, http.MethodPost, "inventory_levels/set.json", payload, &envelope)
	if err != nil {
		return err
	}

	c.logSuccess(fmt.Sprintf("shopify inventory set item=%d location=%d available=%d", inventoryItemID, locationID, quantity))
	return nil
}
