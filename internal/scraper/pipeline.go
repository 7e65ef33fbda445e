package scraper

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"

	"opdeals/dealworker/logger"
)

// Pipeline runs one candidate URL through fetch, routing, field
// extraction, normalization and validation. Collaborators are injected
// so tests can substitute them.
type Pipeline struct {
	fetcher Fetcher
	log     *logger.Logger
}

// NewPipeline creates a pipeline around a fetcher.
func NewPipeline(fetcher Fetcher) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		log:     logger.ForScraper(),
	}
}

// Scrape fetches a candidate URL and returns the extracted Deal, or nil
// when the candidate is rejected at any stage. Rejection reasons go to
// the log only; callers cannot distinguish "failed" from "not a deal".
// Nothing escapes this boundary: panics are recovered and converted to
// absence so one bad candidate never aborts the scan loop.
func (p *Pipeline) Scrape(ctx context.Context, rawURL string) (deal *Deal) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().
				Str("url", rawURL).
				Interface("panic", r).
				Msg("Extraction panicked")
			deal = nil
		}
	}()

	res, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		p.log.Error().
			Str("url", rawURL).
			Err(err).
			Msg("Fetch failed")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		p.log.Error().
			Str("url", res.FinalURL).
			Err(err).
			Msg("HTML parse failed")
		return nil
	}

	profile, routeErr := routeProfile(res.FinalURL)
	if routeErr != nil {
		p.log.Info().
			Str("url", res.FinalURL).
			Str("reason", routeErr.Message).
			Str("source", routeErr.Source).
			Msg("Skipping candidate")
		return nil
	}

	p.log.Debug().
		Str("url", rawURL).
		Str("final_url", res.FinalURL).
		Str("profile", profile.Name).
		Msg("Routed candidate")

	ec := &Context{
		Doc:      doc,
		Body:     string(res.Body),
		FinalURL: res.FinalURL,
	}

	title := firstMatch(ec, profile.Title)
	if title == "" {
		title = missingTitle
	}

	candidate := &Deal{
		Title:  title,
		Price:  NormalizeAmount(firstMatch(ec, profile.Price)),
		MRP:    NormalizeAmount(firstMatch(ec, profile.MRP)),
		Image:  firstMatch(ec, profile.Image),
		Source: profile.Source,
		URL:    res.FinalURL,
	}

	checks := checkFields(candidate)
	if !checks.pass() {
		p.log.Info().
			Bool("title_ok", checks.Title).
			Bool("price_ok", checks.Price).
			Bool("mrp_ok", checks.MRP).
			Bool("image_ok", checks.Image).
			Bool("url_ok", checks.URL).
			Str("url", res.FinalURL).
			Str("body_snippet", bodyExcerpt(ec.Body)).
			Msg("Skipping incomplete deal")
		return nil
	}

	p.log.Debug().
		Str("title", candidate.Title).
		Str("price", candidate.Price).
		Str("url", candidate.URL).
		Msg("Extracted deal")

	return candidate
}
