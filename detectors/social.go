package detectors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shopify-insights/internal/types"
	"shopify-insights/utils"
)

// socialPlatforms pairs each platform with its hostname substrings, in
// priority order. The first matching anchor per platform wins.
var socialPlatforms = []struct {
	name  string
	hosts []string
}{
	{"instagram", []string{"instagram.com"}},
	{"facebook", []string{"facebook.com", "fb.me/"}},
	{"tiktok", []string{"tiktok.com"}},
	{"twitter", []string{"twitter.com", "x.com"}},
	{"youtube", []string{"youtube.com", "youtu.be"}},
	{"linkedin", []string{"linkedin.com"}},
	{"pinterest", []string{"pinterest.com"}},
}

// ExtractSocialHandles classifies anchors by hostname substring in a single
// pass. Unrecognized social-looking domains are not collected into Others.
func ExtractSocialHandles(doc *goquery.Document, base string) types.SocialHandles {
	handles := types.SocialHandles{Others: map[string]string{}}

	fields := map[string]*string{
		"instagram": &handles.Instagram,
		"facebook":  &handles.Facebook,
		"tiktok":    &handles.TikTok,
		"twitter":   &handles.Twitter,
		"youtube":   &handles.YouTube,
		"linkedin":  &handles.LinkedIn,
		"pinterest": &handles.Pinterest,
	}

	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href := utils.AbsoluteURL(base, a.AttrOr("href", ""))
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		for _, platform := range socialPlatforms {
			if containsAny(lower, platform.hosts) {
				setIfEmpty(fields[platform.name], href)
				break
			}
		}
	})

	return handles
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
