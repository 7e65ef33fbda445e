package scraper

import (
	"encoding/json"
	"regexp"
)

// The colorImages blob is embedded in an inline script; the 'initial'
// array inside it is plain JSON.
var (
	colorImagesPattern = regexp.MustCompile(`colorImages':.*'initial':\s*(\[.+?\])},\n`)
	hiResAttrPattern   = regexp.MustCompile(`data-a-hires="(.+?)"`)
)

// variantImage is one entry of the colorImages 'initial' array.
type variantImage struct {
	HiRes string `json:"hiRes"`
	Large string `json:"large"`
}

// colorImagesJSON pulls the first variant image out of the embedded
// colorImages script blob, preferring the high-resolution URL.
func colorImagesJSON(ctx *Context) string {
	m := colorImagesPattern.FindStringSubmatch(ctx.Body)
	if m == nil {
		return ""
	}

	var variants []variantImage
	if err := json.Unmarshal([]byte(m[1]), &variants); err != nil || len(variants) == 0 {
		return ""
	}

	if variants[0].HiRes != "" {
		return variants[0].HiRes
	}
	return variants[0].Large
}

// hiResAttrScan finds the first data-a-hires attribute anywhere in the
// raw body. Last resort for the cached rendering, where the main image
// element is not always reachable by id.
func hiResAttrScan(ctx *Context) string {
	m := hiResAttrPattern.FindStringSubmatch(ctx.Body)
	if m == nil {
		return ""
	}
	return m[1]
}

// amazonDirect is the profile for pages fetched straight from the
// retailer.
var amazonDirect = &Profile{
	Name:   "amazon",
	Source: "Amazon",
	Title: []Strategy{
		selectorText("#productTitle"),
		selectorAttr(`meta[property="og:title"]`, "content"),
	},
	Price: []Strategy{
		selectorText(".priceToPay .a-offscreen"),
		selectorText("#corePrice_desktop .a-offscreen"),
		selectorText("#priceblock_ourprice"),
		selectorText("#priceblock_dealprice"),
		selectorText(".a-price .a-offscreen"),
		selectorText(".a-price-whole"),
	},
	MRP: []Strategy{
		selectorText(".basisPrice .a-price .a-offscreen"),
		selectorText("#price .a-text-price .a-offscreen"),
		selectorText(".a-text-price .a-offscreen"),
	},
	Image: []Strategy{
		selectorAttr("#landingImage", "src"),
		colorImagesJSON,
	},
}

// amazonCache is the profile for the google-cache rendering of a product
// page, which templates the same data differently.
var amazonCache = &Profile{
	Name:   "amazon-cache",
	Source: "Amazon",
	Title: []Strategy{
		selectorAttr(`meta[property="og:title"]`, "content"),
		selectorText("#productTitle"),
	},
	Price: []Strategy{
		selectorText("#_price .normal-price"),
		selectorText(".priceToPay .a-offscreen"),
		selectorText("#corePrice_desktop .a-offscreen"),
		selectorText("#priceblock_ourprice"),
		selectorText("#priceblock_dealprice"),
		selectorText(".a-price .a-offscreen"),
		selectorText(".a-price-whole"),
	},
	MRP: []Strategy{
		selectorText(".basisPrice .a-price .a-offscreen"),
		selectorText("#price .a-text-price .a-offscreen"),
		selectorText(".a-text-price .a-offscreen"),
	},
	Image: []Strategy{
		selectorAttr("#main-image", "data-a-hires"),
		hiResAttrScan,
	},
}
