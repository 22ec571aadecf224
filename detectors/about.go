package detectors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

// FindAboutAndLinks scans footer anchors (whole document when no footer)
// for an about-page candidate and commonly surfaced links. The about URL is
// only captured here, not fetched; the orchestrator resolves its text.
// First match per link kind wins.
func FindAboutAndLinks(doc *goquery.Document, base string) (aboutURL string, links types.ImportantLinks) {
	links = types.ImportantLinks{Others: map[string]string{}}

	scope := doc.Find("footer").First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	scope.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		text := strings.ToLower(collapseSpace(a.Text()))
		href := utils.AbsoluteURL(base, a.AttrOr("href", ""))
		if href == "" {
			return
		}

		if strings.Contains(text, "about") || strings.Contains(text, "our story") {
			setIfEmpty(&aboutURL, href)
		}
		if strings.Contains(text, "track") {
			setIfEmpty(&links.OrderTracking, href)
		}
		if strings.Contains(text, "contact") {
			setIfEmpty(&links.ContactUs, href)
		}
		if strings.Contains(text, "blog") || strings.Contains(strings.ToLower(href), "/blogs") {
			setIfEmpty(&links.Blog, href)
		}
	})

	return aboutURL, links
}
