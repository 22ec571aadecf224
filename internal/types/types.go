package types

import "context"

// Product represents a single catalog or hero product. It is constructed
// once from a catalog JSON entry or scraped markup and never mutated.
type Product struct {
	Title    string   `json:"title"`
	Handle   string   `json:"handle,omitempty"`
	URL      string   `json:"url,omitempty" validate:"omitempty,url"`
	Price    string   `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Image    string   `json:"image,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// FAQ is a question/answer pair extracted from a help or FAQ page.
type FAQ struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// Policies holds resolved policy page URLs. Fields stay empty when no
// strategy found a link; an earlier strategy's value is never overwritten.
type Policies struct {
	PrivacyPolicyURL  string `json:"privacy_policy_url,omitempty" validate:"omitempty,url"`
	RefundPolicyURL   string `json:"refund_policy_url,omitempty" validate:"omitempty,url"`
	TermsURL          string `json:"terms_url,omitempty" validate:"omitempty,url"`
	ShippingPolicyURL string `json:"shipping_policy_url,omitempty" validate:"omitempty,url"`
}

// SocialHandles holds per-platform profile URLs, first match per platform.
// Others is declared for unrecognized social domains but detection does not
// populate it yet.
type SocialHandles struct {
	Instagram string            `json:"instagram,omitempty"`
	Facebook  string            `json:"facebook,omitempty"`
	TikTok    string            `json:"tiktok,omitempty"`
	Twitter   string            `json:"twitter,omitempty"`
	YouTube   string            `json:"youtube,omitempty"`
	LinkedIn  string            `json:"linkedin,omitempty"`
	Pinterest string            `json:"pinterest,omitempty"`
	Others    map[string]string `json:"others"`
}

// ContactDetails holds deduplicated, lexically sorted contact strings.
// Both lists are capped to bound pathological page output.
type ContactDetails struct {
	Emails  []string `json:"emails" validate:"max=10"`
	Phones  []string `json:"phones" validate:"max=10"`
	Address string   `json:"address,omitempty"`
}

// ImportantLinks holds commonly surfaced storefront links.
type ImportantLinks struct {
	OrderTracking string            `json:"order_tracking,omitempty" validate:"omitempty,url"`
	ContactUs     string            `json:"contact_us,omitempty" validate:"omitempty,url"`
	Blog          string            `json:"blog,omitempty" validate:"omitempty,url"`
	Others        map[string]string `json:"others"`
}

// BrandProfile is the assembled result of one extraction request. It is
// always returned, even on total fetch failure, with IsShopify false and
// every collection empty rather than nil.
type BrandProfile struct {
	IsShopify      bool           `json:"is_shopify"`
	BrandName      string         `json:"brand_name,omitempty"`
	BaseURL        string         `json:"base_url" validate:"required,url"`
	ProductCatalog []Product      `json:"product_catalog" validate:"dive"`
	HeroProducts   []Product      `json:"hero_products" validate:"max=12,dive"`
	Policies       Policies       `json:"policies"`
	FAQs           []FAQ          `json:"faqs" validate:"max=50,dive"`
	SocialHandles  SocialHandles  `json:"social_handles"`
	ContactDetails ContactDetails `json:"contact_details"`
	AboutText      string         `json:"about_text,omitempty" validate:"max=2000"`
	ImportantLinks ImportantLinks `json:"important_links"`
}

// NewBrandProfile returns an empty profile for the given base URL with all
// collections initialized, so callers and JSON consumers never see null.
func NewBrandProfile(baseURL string) *BrandProfile {
	return &BrandProfile{
		BaseURL:        baseURL,
		ProductCatalog: []Product{},
		HeroProducts:   []Product{},
		FAQs:           []FAQ{},
		SocialHandles:  SocialHandles{Others: map[string]string{}},
		ContactDetails: ContactDetails{Emails: []string{}, Phones: []string{}},
		ImportantLinks: ImportantLinks{Others: map[string]string{}},
	}
}

// Normalize replaces nil collections with empty ones so the profile keeps
// its never-null invariant after JSON round-trips.
func (p *BrandProfile) Normalize() {
	if p.ProductCatalog == nil {
		p.ProductCatalog = []Product{}
	}
	if p.HeroProducts == nil {
		p.HeroProducts = []Product{}
	}
	if p.FAQs == nil {
		p.FAQs = []FAQ{}
	}
	if p.SocialHandles.Others == nil {
		p.SocialHandles.Others = map[string]string{}
	}
	if p.ContactDetails.Emails == nil {
		p.ContactDetails.Emails = []string{}
	}
	if p.ContactDetails.Phones == nil {
		p.ContactDetails.Phones = []string{}
	}
	if p.ImportantLinks.Others == nil {
		p.ImportantLinks.Others = map[string]string{}
	}
}

// Structurer is the optional downstream collaborator that cleans and
// restructures a profile (about text, FAQs) while leaving the catalog and
// hero products untouched. Implementations must return a profile that
// passes ValidateProfile.
type Structurer interface {
	Structure(ctx context.Context, profile *BrandProfile) (*BrandProfile, error)
}

// Logger defines the logging interface.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
