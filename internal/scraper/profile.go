package scraper

import "strings"

// Profile is one named set of ordered field strategies. Which profile
// applies is decided once, at routing time, based on how the page was
// obtained (direct fetch vs the google-cache rendering of it).
type Profile struct {
	Name   string
	Source string

	Title []Strategy
	Price []Strategy
	MRP   []Strategy
	Image []Strategy
}

// firstMatch applies strategies in priority order and returns the first
// non-empty result. Later strategies are fallbacks, never merged.
func firstMatch(ctx *Context, strategies []Strategy) string {
	for _, strategy := range strategies {
		if strategy == nil {
			continue
		}
		if result := strategy(ctx); result != "" {
			return result
		}
	}
	return ""
}

// selectorText extracts the trimmed text of the first element matching
// the selector.
func selectorText(selector string) Strategy {
	return func(ctx *Context) string {
		sel := ctx.Doc.Find(selector).First()
		if sel.Length() == 0 {
			return ""
		}
		return strings.TrimSpace(sel.Text())
	}
}

// selectorAttr extracts a trimmed attribute value from the first element
// matching the selector.
func selectorAttr(selector, attr string) Strategy {
	return func(ctx *Context) string {
		sel := ctx.Doc.Find(selector).First()
		if sel.Length() == 0 {
			return ""
		}
		val, exists := sel.Attr(attr)
		if !exists {
			return ""
		}
		return strings.TrimSpace(val)
	}
}
