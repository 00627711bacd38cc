package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"airtable-shopify-sync/internal/adapters/shopify/dto"
)

const metafieldTypeText = "single_line_text_field"

// SetVariantMetafield upserts a namespaced single-line-text metafield on
// the variant. userErrors come back as *UserErrorsError.
func (c *Client) SetVariantMetafield(ctx context.Context, ownerGID string, namespace string, key string, value string) error {
	ownerGID = strings.TrimSpace(ownerGID)
	namespace = strings.TrimSpace(namespace)
	key = strings.TrimSpace(key)
	if ownerGID == "" || namespace == "" || key == "" {
		return errors.New("shopify metafield owner, namespace and key are required")
	}

	query := `
	mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
		metafieldsSet(metafields: $metafields) {
			metafields { id namespace key type value }
			userErrors { field message }
		}
	}`

	payload := []map[string]any{
		{
			"ownerId":   ownerGID,
			"namespace": namespace,
			"key":       key,
			"type":      metafieldTypeText,
			"value":     value,
		},
	}

	var data dto.MetafieldsSetData
	if err := c.graphqlRequest(ctx, query, map[string]any{"metafields": payload}, &data); err != nil {
		return err
	}
	if err := userErrorsToError("metafieldsSet", data.MetafieldsSet.UserErrors); err != nil {
		return err
	}

	c.logSuccess(fmt.Sprintf("shopify metafield set owner=%s %s.%s=%s", ownerGID, namespace, key, value))
	return nil
}
