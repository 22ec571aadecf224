package detectors

import "strings"

// storefrontNeedles are platform-specific markers: CDN hostnames, analytics
// globals, theme markers, the meta generator tag and the payment widget
// class. Any single match is sufficient.
var storefrontNeedles = []string{
	"cdn.shopify.com",
	"myshopify.com",
	"Shopify.theme",
	"ShopifyAnalytics",
	`content="Shopify"`,
	"shopify_pay",
	"shopify-section",
}

// DetectStorefront reports whether the homepage HTML carries any Shopify
// platform marker. Case-insensitive substring search, OR semantics.
func DetectStorefront(html string) bool {
	lower := strings.ToLower(html)
	for _, needle := range storefrontNeedles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
