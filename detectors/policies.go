package detectors

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

// policyPaths lists known path suffixes per policy kind, in priority order.
var policyPaths = map[string][]string{
	"privacy":  {"/policies/privacy-policy", "/pages/privacy-policy", "/privacy-policy", "/policies/privacy"},
	"refund":   {"/policies/refund-policy", "/pages/refund-policy", "/refund-policy", "/policies/refunds"},
	"terms":    {"/policies/terms-of-service", "/pages/terms-of-service", "/terms-of-service", "/terms"},
	"shipping": {"/policies/shipping-policy", "/pages/shipping-policy", "/shipping-policy", "/policies/shipping"},
}

// ResolvePolicyLinks resolves policy page links in two passes: anchors
// matching a known path suffix first, then footer anchors by link-text
// keyword for any kind still unresolved. The path pass always takes
// priority over the keyword pass.
func ResolvePolicyLinks(doc *goquery.Document, base string) types.Policies {
	var policies types.Policies

	fields := map[string]*string{
		"privacy":  &policies.PrivacyPolicyURL,
		"refund":   &policies.RefundPolicyURL,
		"terms":    &policies.TermsURL,
		"shipping": &policies.ShippingPolicyURL,
	}

	// Pass 1: known path suffixes.
	for kind, paths := range policyPaths {
		for _, path := range paths {
			link := doc.Find(fmt.Sprintf("a[href$='%s'], a[href*='%s']", path, path)).First()
			if link.Length() == 0 {
				continue
			}
			if href := utils.AbsoluteURL(base, link.AttrOr("href", "")); href != "" {
				setIfEmpty(fields[kind], href)
				break
			}
		}
	}

	// Pass 2: footer anchors by link text, whole document when no footer.
	scope := doc.Find("footer").First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}
	scope.Find("a").Each(func(i int, a *goquery.Selection) {
		text := strings.ToLower(collapseSpace(a.Text()))
		href := utils.AbsoluteURL(base, a.AttrOr("href", ""))
		if href == "" {
			return
		}
		if strings.Contains(text, "privacy") {
			setIfEmpty(&policies.PrivacyPolicyURL, href)
		}
		if strings.Contains(text, "refund") || strings.Contains(text, "returns") {
			setIfEmpty(&policies.RefundPolicyURL, href)
		}
		if strings.Contains(text, "terms") {
			setIfEmpty(&policies.TermsURL, href)
		}
		if strings.Contains(text, "shipping") {
			setIfEmpty(&policies.ShippingPolicyURL, href)
		}
	})

	return policies
}
