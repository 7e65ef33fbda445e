package scraper

import (
	"strconv"
	"strings"
)

// missingTitle is the placeholder a titleless extraction carries into
// validation; the gate rejects it.
const missingTitle = "No Title"

// bodyExcerptLimit bounds the diagnostic document excerpt logged on
// rejection.
const bodyExcerptLimit = 500

// fieldChecks holds the outcome of each completeness predicate.
type fieldChecks struct {
	Title bool
	Price bool
	MRP   bool
	Image bool
	URL   bool
}

// pass reports whether every predicate holds; the accept decision is
// exactly their conjunction.
func (c fieldChecks) pass() bool {
	return c.Title && c.Price && c.MRP && c.Image && c.URL
}

// checkFields applies the completeness predicates to an extracted
// candidate: real title, strictly positive price and MRP, image and URL
// present.
func checkFields(d *Deal) fieldChecks {
	return fieldChecks{
		Title: strings.TrimSpace(d.Title) != "" && d.Title != missingTitle,
		Price: positiveInt(d.Price),
		MRP:   positiveInt(d.MRP),
		Image: d.Image != "",
		URL:   d.URL != "",
	}
}

// positiveInt reports whether s parses as a strictly positive integer.
// Normalized decimals ("1299.5") fail on purpose: amounts are gated on
// their whole-unit value.
func positiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// bodyExcerpt flattens and bounds a document body for rejection logs.
func bodyExcerpt(body string) string {
	flat := strings.ReplaceAll(body, "\n", " ")
	if len(flat) > bodyExcerptLimit {
		flat = flat[:bodyExcerptLimit]
	}
	return flat
}
