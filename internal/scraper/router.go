package scraper

import (
	"strings"

	"opdeals/dealworker/helpers"
	apperrors "opdeals/dealworker/pkg/errors"
)

// routeProfile classifies a resolved URL by host substring and returns
// the extraction profile to use. Unsupported domains and supported-host
// URLs lacking a product-path marker are rejected here, before any field
// extraction runs; the returned routing error says which.
func routeProfile(finalURL string) (*Profile, *apperrors.ScrapeError) {
	domain := hostOf(finalURL)

	var profile *Profile
	switch {
	case strings.Contains(domain, "webcache.googleusercontent"):
		profile = amazonCache
	case strings.Contains(domain, "amazon"):
		profile = amazonDirect
	default:
		return nil, apperrors.NewRouting(domain, "unsupported domain")
	}

	if !isProductURL(finalURL) {
		return nil, apperrors.NewRouting(profile.Source, "no product-path marker in url")
	}
	return profile, nil
}

// hostOf derives the host part of a URL: everything between the scheme
// separator and the next slash.
func hostOf(url string) string {
	rest, err := helpers.GetSplitPart(url, "//", 1)
	if err != nil {
		rest = url
	}
	host, err := helpers.GetSplitPart(rest, "/", 0)
	if err != nil {
		return rest
	}
	return host
}

// isProductURL reports whether the URL carries a product-path marker.
func isProductURL(url string) bool {
	return strings.Contains(url, "/dp/") || strings.Contains(url, "/gp/")
}
