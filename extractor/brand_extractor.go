package extractor

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"shopify-insights/config"
	"shopify-insights/detectors"
	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

const (
	aboutTextCap  = 2000
	aboutTextMin  = 60
	probeParallel = 4
)

// aboutGuessedPaths are fallback about-page paths tried in fixed order when
// no about link was found or its page yielded too little text.
var aboutGuessedPaths = []string{
	"/pages/about",
	"/pages/about-us",
	"/about-us",
	"/about",
	"/pages/our-story",
}

// policyProbes maps each policy kind to the one canonical path probed
// directly when link resolution left it empty.
var policyProbes = []struct {
	field func(*types.Policies) *string
	path  string
}{
	{func(p *types.Policies) *string { return &p.PrivacyPolicyURL }, "/policies/privacy-policy"},
	{func(p *types.Policies) *string { return &p.RefundPolicyURL }, "/policies/refund-policy"},
	{func(p *types.Policies) *string { return &p.TermsURL }, "/policies/terms-of-service"},
	{func(p *types.Policies) *string { return &p.ShippingPolicyURL }, "/policies/shipping-policy"},
}

// BrandExtractor orchestrates the detector pipeline for one storefront.
// Each request gets its own extractor and HTTP client; no state is shared
// across requests.
type BrandExtractor struct {
	client *utils.HTTPClient
	config *config.Config
	logger types.Logger
}

// NewBrandExtractor creates a new extractor with a fresh HTTP client.
func NewBrandExtractor(cfg *config.Config, logger types.Logger) *BrandExtractor {
	return &BrandExtractor{
		client: utils.NewHTTPClient(cfg, logger),
		config: cfg,
		logger: logger,
	}
}

// Extract assembles the brand profile for a storefront URL. Every detector
// failure is isolated; only a failed homepage fetch short-circuits, and
// even then an empty, platform-negative profile is returned rather than an
// error.
func (e *BrandExtractor) Extract(ctx context.Context, websiteURL string) (*types.BrandProfile, error) {
	startTime := time.Now()

	if e.config.Fetch.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Fetch.ExtractTimeout)
		defer cancel()
	}

	base := utils.NormalizeBase(websiteURL)
	profile := types.NewBrandProfile(base)

	e.logger.Infof("Starting extraction for %s", base)

	homeHTML, err := e.client.FetchText(ctx, base)
	if err != nil {
		e.logger.Warnf("Homepage unreachable, returning empty profile: %v", err)
		return profile, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homeHTML))
	if err != nil {
		e.logger.Warnf("Homepage unparsable, returning empty profile: %v", err)
		return profile, nil
	}

	profile.IsShopify = detectors.DetectStorefront(homeHTML)
	profile.BrandName = brandName(doc)

	e.logger.Debug("Fetching product catalog")
	profile.ProductCatalog = detectors.FetchCatalog(ctx, e.client, e.logger, base)

	e.logger.Debug("Extracting hero products")
	profile.HeroProducts = detectors.ExtractHeroProducts(doc, base)

	e.logger.Debug("Resolving policy links")
	profile.Policies = detectors.ResolvePolicyLinks(doc, base)

	e.logger.Debug("Collecting FAQs")
	profile.FAQs = e.collectFAQs(ctx, doc, base)

	e.logger.Debug("Extracting social handles and contact details")
	profile.SocialHandles = detectors.ExtractSocialHandles(doc, base)
	profile.ContactDetails = detectors.ExtractContactDetails(doc)

	e.logger.Debug("Resolving about page and important links")
	aboutURL, links := detectors.FindAboutAndLinks(doc, base)
	profile.ImportantLinks = links
	profile.AboutText = e.resolveAboutText(ctx, base, aboutURL)

	e.probePolicyPaths(ctx, base, &profile.Policies)

	e.logger.Infof("Extraction for %s completed in %v: %d catalog products, %d hero products, %d FAQs",
		base, time.Since(startTime), len(profile.ProductCatalog), len(profile.HeroProducts), len(profile.FAQs))

	return profile, nil
}

// Close releases the extractor's HTTP client.
func (e *BrandExtractor) Close() {
	e.client.Close()
}

// brandName reads the page title, preferring the og:site_name meta tag.
func brandName(doc *goquery.Document) string {
	name := collapse(doc.Find("title").First().Text())
	if content, ok := doc.Find("meta[property='og:site_name']").First().Attr("content"); ok {
		if content = collapse(content); content != "" {
			name = content
		}
	}
	return name
}

// collectFAQs scans the homepage itself plus up to five candidate FAQ
// pages. A failed page fetch is skipped silently.
func (e *BrandExtractor) collectFAQs(ctx context.Context, doc *goquery.Document, base string) []types.FAQ {
	faqs := detectors.ExtractFAQs(doc)

	for _, page := range detectors.DiscoverFAQPages(doc, base) {
		html, err := e.client.FetchText(ctx, page)
		if err != nil {
			e.logger.Debugf("FAQ page skipped: %v", err)
			continue
		}
		pageDoc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			continue
		}
		faqs = append(faqs, detectors.ExtractFAQs(pageDoc)...)
	}

	return detectors.DedupFAQs(faqs)
}

// resolveAboutText fetches the captured about-page candidate, then falls
// through guessed paths in fixed order, accepting the first page whose
// visible text exceeds the minimum length. Text is capped at 2000 chars.
func (e *BrandExtractor) resolveAboutText(ctx context.Context, base, aboutURL string) string {
	candidates := []string{}
	if aboutURL != "" {
		candidates = append(candidates, aboutURL)
	}
	for _, path := range aboutGuessedPaths {
		candidates = append(candidates, base+path)
	}

	for _, candidate := range candidates {
		html, err := e.client.FetchText(ctx, candidate)
		if err != nil {
			e.logger.Debugf("About candidate skipped: %v", err)
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			continue
		}
		text := truncate(detectors.VisibleText(doc.Selection), aboutTextCap)
		if len([]rune(text)) > aboutTextMin {
			return text
		}
	}

	return ""
}

// probePolicyPaths issues a direct probe to one canonical path per policy
// kind still unresolved, accepting it when the fetch succeeds. Probes for
// independent kinds run concurrently; each failure is isolated.
func (e *BrandExtractor) probePolicyPaths(ctx context.Context, base string, policies *types.Policies) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeParallel)

	for _, probe := range policyProbes {
		dst := probe.field(policies)
		if *dst != "" {
			continue
		}
		url := base + probe.path
		g.Go(func() error {
			if _, err := e.client.FetchText(gctx, url); err == nil {
				*dst = url
			}
			return nil
		})
	}

	_ = g.Wait()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
