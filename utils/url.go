package utils

import (
	"net/url"
	"strings"
)

// NormalizeBase reduces a website URL to its scheme://host origin,
// defaulting to https when no scheme was given (e.g. "example.com").
func NormalizeBase(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimRight(strings.TrimSpace(raw), "/")
	}

	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "https"
	}

	host := parsed.Host
	if host == "" {
		// "example.com" parses as a path, not a host.
		host = strings.SplitN(parsed.Path, "/", 2)[0]
	}

	return strings.TrimRight(scheme+"://"+host, "/")
}

// AbsoluteURL resolves href against base. Returns "" for an empty href and
// the href unchanged when it cannot be parsed.
func AbsoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	baseURL, err := url.Parse(base + "/")
	if err != nil {
		return href
	}
	resolved, err := baseURL.Parse(href)
	if err != nil {
		return href
	}
	return resolved.String()
}
