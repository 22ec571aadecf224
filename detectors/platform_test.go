package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStorefront_CDNHostnameAnywhere(t *testing.T) {
	html := `<html><body><p>random content</p><img src="https://cdn.shopify.com/s/files/1/logo.png"></body></html>`

	assert.True(t, DetectStorefront(html))
}

func TestDetectStorefront_CaseInsensitive(t *testing.T) {
	assert.True(t, DetectStorefront(`<script>window.SHOPIFYANALYTICS = {}</script>`))
	assert.True(t, DetectStorefront(`<meta name="generator" content="Shopify">`))
}

func TestDetectStorefront_SingleMatchSufficient(t *testing.T) {
	needles := []string{
		"cdn.shopify.com",
		"myshopify.com",
		"Shopify.theme",
		"ShopifyAnalytics",
		`content="Shopify"`,
		"shopify_pay",
		"shopify-section",
	}

	for _, needle := range needles {
		assert.True(t, DetectStorefront("<html>"+needle+"</html>"), "needle %q should match", needle)
	}
}

func TestDetectStorefront_Negative(t *testing.T) {
	assert.False(t, DetectStorefront(`<html><body>A plain WooCommerce store</body></html>`))
	assert.False(t, DetectStorefront(""))
}
