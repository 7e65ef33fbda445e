package scraper

import "regexp"

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// ScanURLs returns every URL-shaped substring of text in order of first
// occurrence. Duplicates are preserved; no text means no candidates.
func ScanURLs(text string) []string {
	if text == "" {
		return nil
	}
	return urlPattern.FindAllString(text, -1)
}
