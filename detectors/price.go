package detectors

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PriceScope is the input to the universal price/currency extractor: either
// a whole document or a single markup subtree. JSON-LD strategies only
// apply to whole documents.
type PriceScope struct {
	Sel      *goquery.Selection
	WholeDoc bool
}

// DocScope scopes extraction to a whole document.
func DocScope(doc *goquery.Document) PriceScope {
	return PriceScope{Sel: doc.Selection, WholeDoc: true}
}

// CardScope scopes extraction to a markup subtree.
func CardScope(sel *goquery.Selection) PriceScope {
	return PriceScope{Sel: sel}
}

// priceSelectors target price-like attributes and class names, tried in
// order; the first element with usable content wins.
var priceSelectors = []string{
	"meta[property='product:price:amount']",
	"[itemprop='price']",
	".price",
	".product-price",
	"[data-price]",
	".money",
}

// currencyMetaSelectors target meta/microdata currency tags.
var currencyMetaSelectors = []string{
	"meta[property='og:price:currency']",
	"meta[property='product:price:currency']",
	"meta[itemprop='priceCurrency']",
	"[itemprop='priceCurrency']",
}

// knownCurrencyCodes is the allow-list for bare 3-letter tokens found in
// page text.
var knownCurrencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "INR": true, "CAD": true,
	"AUD": true, "JPY": true, "CNY": true, "NZD": true, "SGD": true,
	"AED": true, "CHF": true, "SEK": true, "NOK": true, "DKK": true,
	"ZAR": true, "BRL": true, "MXN": true, "HKD": true, "KRW": true,
}

// currencySymbols maps symbols to codes. Ambiguous by design: "$" is read
// as USD.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"€", "EUR"},
	{"£", "GBP"},
	{"₹", "INR"},
	{"¥", "JPY"},
	{"$", "USD"},
}

var (
	symbolPriceRe     = regexp.MustCompile(`[$€£₹¥]\s?([0-9][0-9.,]*)`)
	currencyCodeRe    = regexp.MustCompile(`\b[A-Z]{3}\b`)
	nonPriceCharsRe   = regexp.MustCompile(`[^0-9.]`)
	currencyExactlyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

type priceStrategy func(scope PriceScope) string

// priceChain is the ordered price strategy list; execution stops at the
// first strategy that yields a value.
var priceChain = []priceStrategy{
	jsonLDPrice,
	selectorPrice,
	symbolPrice,
}

// currencyChain is the ordered currency strategy list.
var currencyChain = []priceStrategy{
	jsonLDCurrency,
	metaCurrency,
	codeTokenCurrency,
	symbolCurrency,
}

// ExtractPrice runs the price strategy chain against the scope. An empty
// result means no strategy succeeded; that is not an error.
func ExtractPrice(scope PriceScope) string {
	return runChain(priceChain, scope)
}

// ExtractCurrency runs the currency strategy chain against the scope.
func ExtractCurrency(scope PriceScope) string {
	return runChain(currencyChain, scope)
}

func runChain(chain []priceStrategy, scope PriceScope) string {
	for _, strategy := range chain {
		if v := strategy(scope); v != "" {
			return v
		}
	}
	return ""
}

// --- JSON-LD strategies ---

func jsonLDPrice(scope PriceScope) string {
	price, _ := jsonLDOffer(scope)
	return price
}

func jsonLDCurrency(scope PriceScope) string {
	_, currency := jsonLDOffer(scope)
	if currencyExactlyRe.MatchString(currency) {
		return strings.ToUpper(currency)
	}
	return ""
}

// jsonLDOffer walks embedded JSON-LD blocks for the first structured offer.
// Only applies when the scope is a whole document.
func jsonLDOffer(scope PriceScope) (price, currency string) {
	if !scope.WholeDoc {
		return "", ""
	}

	scope.Sel.Find(`script[type='application/ld+json']`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		price, currency = findOffer(data)
		return price == "" && currency == ""
	})

	return price, currency
}

// findOffer recursively searches decoded JSON-LD for an offers node.
func findOffer(data interface{}) (price, currency string) {
	switch node := data.(type) {
	case map[string]interface{}:
		if offers, ok := node["offers"]; ok {
			if p, c := offerFields(offers); p != "" || c != "" {
				return p, c
			}
		}
		for _, v := range node {
			if p, c := findOffer(v); p != "" || c != "" {
				return p, c
			}
		}
	case []interface{}:
		for _, v := range node {
			if p, c := findOffer(v); p != "" || c != "" {
				return p, c
			}
		}
	}
	return "", ""
}

func offerFields(offers interface{}) (price, currency string) {
	switch node := offers.(type) {
	case map[string]interface{}:
		return numericString(node["price"]), stringField(node, "priceCurrency")
	case []interface{}:
		for _, v := range node {
			if p, c := offerFields(v); p != "" || c != "" {
				return p, c
			}
		}
	}
	return "", ""
}

func stringField(node map[string]interface{}, key string) string {
	if v, ok := node[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// --- CSS / text strategies ---

// selectorPrice reads the first price-like element's content attribute or
// visible text, stripped to digits and decimal points.
func selectorPrice(scope PriceScope) string {
	for _, selector := range priceSelectors {
		el := scope.Sel.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		raw, ok := el.Attr("content")
		if !ok {
			raw = el.Text()
		}
		if cleaned := cleanPrice(raw); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// symbolPrice falls back to a currency-symbol-prefixed numeric token
// anywhere in the scope's text.
func symbolPrice(scope PriceScope) string {
	match := symbolPriceRe.FindStringSubmatch(scope.Sel.Text())
	if match == nil {
		return ""
	}
	return cleanPrice(match[1])
}

func metaCurrency(scope PriceScope) string {
	for _, selector := range currencyMetaSelectors {
		el := scope.Sel.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		raw, ok := el.Attr("content")
		if !ok {
			raw = el.Text()
		}
		raw = strings.TrimSpace(raw)
		if currencyExactlyRe.MatchString(raw) {
			return strings.ToUpper(raw)
		}
	}
	return ""
}

// codeTokenCurrency accepts any bare 3-letter uppercase token matching the
// known-code allow-list.
func codeTokenCurrency(scope PriceScope) string {
	for _, token := range currencyCodeRe.FindAllString(scope.Sel.Text(), -1) {
		if knownCurrencyCodes[token] {
			return token
		}
	}
	return ""
}

func symbolCurrency(scope PriceScope) string {
	text := scope.Sel.Text()
	for _, entry := range currencySymbols {
		if strings.Contains(text, entry.symbol) {
			return entry.code
		}
	}
	return ""
}

// cleanPrice strips everything but digits and decimal points, requiring at
// least one digit in the result.
func cleanPrice(raw string) string {
	cleaned := nonPriceCharsRe.ReplaceAllString(raw, "")
	cleaned = strings.Trim(cleaned, ".")
	if !strings.ContainsAny(cleaned, "0123456789") {
		return ""
	}
	return cleaned
}
