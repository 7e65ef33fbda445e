package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Deal represents a validated product deal extracted from a page.
// Instances only exist after the completeness gate has passed; the
// pipeline never returns a partially filled Deal.
type Deal struct {
	Title  string `json:"title"`
	Price  string `json:"price"`
	MRP    string `json:"mrp"`
	Image  string `json:"image"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// FetchResult is the outcome of a successful page fetch.
type FetchResult struct {
	// FinalURL is the URL after following redirects.
	FinalURL string
	// Body is the response body, already converted to UTF-8.
	Body []byte
}

// Fetcher retrieves a page for the pipeline. Implementations follow
// redirects, enforce their own timeout and treat anything but a 2xx
// response with a body as an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Context carries everything the field strategies need for one fetch:
// the parsed document, the raw body for regex-level fallbacks, and the
// final resolved URL. It is created once per fetch and discarded after
// validation.
type Context struct {
	Doc      *goquery.Document
	Body     string
	FinalURL string
}

// Strategy is one ordered query for a field. It returns the extracted
// text, or "" when this strategy did not match; a miss is a normal
// value, never an error.
type Strategy func(*Context) string
