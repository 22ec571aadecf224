package detectors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

const maxHeroProducts = 12

// heroCardSelector matches product-card-like markup on the homepage.
var heroCardSelector = strings.Join([]string{
	".product-card",
	".grid__item",
	"[class*='product-card']",
	"[class*='product-item']",
	"[class*='card-wrapper']",
}, ", ")

// ExtractHeroProducts pulls products surfaced on the homepage. Cards are
// matched by class-name patterns; when none match, every product-detail
// anchor's surrounding markup is treated as a card. Deduplicated by
// absolute URL, first found wins, capped at 12 in document order.
func ExtractHeroProducts(doc *goquery.Document, base string) []types.Product {
	heroes := []types.Product{}
	seen := make(map[string]bool)

	appendHero := func(card *goquery.Selection, link *goquery.Selection) {
		href, _ := link.Attr("href")
		abs := utils.AbsoluteURL(base, href)
		if abs == "" || !strings.Contains(abs, "/products/") || seen[abs] {
			return
		}

		title := strings.TrimSpace(link.AttrOr("title", ""))
		if title == "" {
			title = collapseSpace(link.Text())
		}
		if title == "" {
			title = "Hero product"
		}

		image := ""
		if img := card.Find("img").First(); img.Length() > 0 {
			image = img.AttrOr("src", img.AttrOr("data-src", ""))
		}

		seen[abs] = true
		heroes = append(heroes, types.Product{
			Title:    title,
			URL:      abs,
			Price:    ExtractPrice(CardScope(card)),
			Currency: ExtractCurrency(CardScope(card)),
			Image:    image,
		})
	}

	cards := doc.Find(heroCardSelector)
	if cards.Length() > 0 {
		cards.Each(func(i int, card *goquery.Selection) {
			link := card.Find("a[href*='/products/']").First()
			if link.Length() == 0 {
				return
			}
			appendHero(card, link)
		})
	} else {
		// No recognizable cards; climb up from each product link instead.
		doc.Find("a[href*='/products/']").Each(func(i int, link *goquery.Selection) {
			card := link
			for depth := 0; depth < 3; depth++ {
				if parent := card.Parent(); parent.Length() > 0 {
					card = parent
				}
			}
			appendHero(card, link)
		})
	}

	if len(heroes) > maxHeroProducts {
		heroes = heroes[:maxHeroProducts]
	}
	return heroes
}
