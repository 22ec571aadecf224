package detectors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

const (
	maxFAQs           = 50
	maxFAQPages       = 5
	faqQuestionKeyLen = 80
	faqAnswerKeyLen   = 120
)

// faqGuessedPaths are fixed candidate FAQ page paths tried in addition to
// discovered links.
var faqGuessedPaths = []string{"/pages/faq", "/pages/faqs", "/apps/faq"}

// ExtractFAQs pulls question/answer pairs from a document using two
// structural patterns, unioned: the disclosure-widget pattern
// (details/summary) and the heading pattern (heading followed by sibling
// text blocks up to the next heading).
func ExtractFAQs(doc *goquery.Document) []types.FAQ {
	faqs := []types.FAQ{}

	doc.Find("details").Each(func(i int, d *goquery.Selection) {
		question := collapseSpace(d.Find("summary").First().Text())

		answerEl := d.Find("div").First()
		if answerEl.Length() == 0 {
			answerEl = d.Find("p").First()
		}
		answer := ""
		if answerEl.Length() > 0 {
			answer = collapseSpace(answerEl.Text())
		} else {
			answer = collapseSpace(d.Text())
		}

		if question != "" && answer != "" {
			faqs = append(faqs, types.FAQ{Question: question, Answer: answer})
		}
	})

	doc.Find("h1, h2, h3, h4").Each(func(i int, h *goquery.Selection) {
		question := collapseSpace(h.Text())
		if question == "" {
			return
		}

		var chunks []string
		for cur := h.Next(); cur.Length() > 0; cur = cur.Next() {
			name := goquery.NodeName(cur)
			if isHeadingName(name) {
				break
			}
			switch name {
			case "p", "div", "li":
				if text := collapseSpace(cur.Text()); text != "" {
					chunks = append(chunks, text)
				}
			}
		}

		if answer := strings.Join(chunks, " "); answer != "" {
			faqs = append(faqs, types.FAQ{Question: question, Answer: answer})
		}
	})

	return DedupFAQs(faqs)
}

// DedupFAQs collapses near-duplicate pairs using a fuzzy composite key:
// the first 80 chars of the lower-cased question and the first 120 chars
// of the lower-cased answer. First encountered wins; capped at 50.
func DedupFAQs(faqs []types.FAQ) []types.FAQ {
	seen := make(map[string]bool)
	deduped := []types.FAQ{}
	for _, f := range faqs {
		key := strings.ToLower(truncateRunes(f.Question, faqQuestionKeyLen)) +
			"\x00" + strings.ToLower(truncateRunes(f.Answer, faqAnswerKeyLen))
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, f)
		if len(deduped) == maxFAQs {
			break
		}
	}
	return deduped
}

// DiscoverFAQPages collects candidate FAQ page URLs: homepage anchors whose
// text or href carries FAQ/help/support markers, unioned with fixed guessed
// paths. At most 5 candidates, encounter order preserved.
func DiscoverFAQPages(doc *goquery.Document, base string) []string {
	pages := []string{}
	seen := make(map[string]bool)

	add := func(url string) {
		if url != "" && !seen[url] && len(pages) < maxFAQPages {
			seen[url] = true
			pages = append(pages, url)
		}
	}

	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href := strings.ToLower(a.AttrOr("href", ""))
		text := strings.ToLower(collapseSpace(a.Text()))
		if strings.Contains(href, "faq") || strings.Contains(text, "faq") ||
			strings.Contains(href, "/pages/help") || strings.Contains(href, "/pages/support") {
			add(utils.AbsoluteURL(base, a.AttrOr("href", "")))
		}
	})

	for _, path := range faqGuessedPaths {
		add(base + path)
	}

	return pages
}

func isHeadingName(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
