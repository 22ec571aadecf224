package detectors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

const catalogPageSize = 250

// catalogTemplates are the catalog endpoint templates tried in order. The
// first template that yields at least one product wins; the rest are
// skipped.
var catalogTemplates = []string{
	"/products.json",
	"/collections/all/products.json",
}

// variantPriceFields are the price-like variant fields, in priority order.
var variantPriceFields = []string{"price", "price_min", "compare_at_price"}

type catalogPage struct {
	Products []catalogItem `json:"products"`
	Items    []catalogItem `json:"items"`
}

type catalogItem struct {
	Title    string                   `json:"title"`
	Handle   string                   `json:"handle"`
	Currency string                   `json:"currency"`
	Tags     json.RawMessage          `json:"tags"`
	Variants []map[string]interface{} `json:"variants"`
	Images   []struct {
		Src string `json:"src"`
	} `json:"images"`
	Image struct {
		Src string `json:"src"`
	} `json:"image"`
}

// FetchCatalog retrieves the product catalog by paging through known
// catalog endpoints. Fetch failures abort pagination for the current
// template only; the result is deduplicated by handle (falling back to
// title), first occurrence wins.
func FetchCatalog(ctx context.Context, client *utils.HTTPClient, logger types.Logger, base string) []types.Product {
	products := []types.Product{}

	for _, template := range catalogTemplates {
		for page := 1; ; page++ {
			url := fmt.Sprintf("%s%s?limit=%d&page=%d", base, template, catalogPageSize, page)

			var payload catalogPage
			if err := client.FetchJSON(ctx, url, &payload); err != nil {
				logger.Debugf("Catalog page unavailable: %v", err)
				break
			}

			items := payload.Products
			if len(items) == 0 {
				items = payload.Items
			}
			if len(items) == 0 {
				break
			}

			for _, item := range items {
				products = append(products, productFromCatalogItem(base, item))
			}
		}

		if len(products) > 0 {
			break
		}
	}

	return dedupProducts(products)
}

func productFromCatalogItem(base string, item catalogItem) types.Product {
	p := types.Product{
		Title:  item.Title,
		Handle: item.Handle,
		Tags:   parseTags(item.Tags),
	}

	if item.Handle != "" {
		p.URL = base + "/products/" + item.Handle
	}

	if len(item.Variants) > 0 {
		variant := item.Variants[0]
		for _, field := range variantPriceFields {
			if price := numericString(variant[field]); price != "" {
				p.Price = price
				break
			}
		}
		if currency, ok := variant["currency"].(string); ok {
			p.Currency = currency
		}
	}
	if p.Currency == "" {
		p.Currency = item.Currency
	}

	if len(item.Images) > 0 {
		p.Image = item.Images[0].Src
	} else {
		p.Image = item.Image.Src
	}

	return p
}

// dedupProducts keeps the first occurrence per lower-cased handle, falling
// back to lower-cased title, preserving encounter order. Entries with
// neither are dropped.
func dedupProducts(products []types.Product) []types.Product {
	seen := make(map[string]bool)
	deduped := []types.Product{}
	for _, p := range products {
		key := strings.ToLower(p.Handle)
		if key == "" {
			key = strings.ToLower(p.Title)
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// numericString renders a price-like JSON value (string or number) as a
// decimal string.
func numericString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// parseTags accepts both forms seen in the wild: an array of strings and a
// single comma-separated string.
func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil && joined != "" {
		parts := strings.Split(joined, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			if tag := strings.TrimSpace(part); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	}

	return nil
}
