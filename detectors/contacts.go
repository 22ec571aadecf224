package detectors

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopify-insights/internal/types"
)

const maxContactEntries = 10

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\s-]?)?\(?\d{3,4}\)?[\s-]?\d{3,4}[\s-]?\d{3,4}`)
)

// ExtractContactDetails scans the document's visible text for email and
// phone-number-like tokens. Results are deduplicated, sorted lexically and
// capped to bound attacker-controlled output size.
func ExtractContactDetails(doc *goquery.Document) types.ContactDetails {
	text := VisibleText(doc.Selection)

	return types.ContactDetails{
		Emails: dedupSortCap(emailRe.FindAllString(text, -1)),
		Phones: dedupSortCap(phoneRe.FindAllString(text, -1)),
	}
}

func dedupSortCap(matches []string) []string {
	seen := make(map[string]bool)
	for _, m := range matches {
		if m = strings.TrimSpace(m); m != "" {
			seen[m] = true
		}
	}

	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)

	if len(out) > maxContactEntries {
		out = out[:maxContactEntries]
	}
	return out
}
