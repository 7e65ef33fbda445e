package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"opdeals/dealworker/helpers"
	"opdeals/dealworker/logger"
	apperrors "opdeals/dealworker/pkg/errors"
	"opdeals/dealworker/services/cache"
)

// PageFetcher fetches candidate pages over HTTP with a fixed timeout,
// following redirects. When the upstream rate limits us it places a
// block entry in the cache service keyed by host, so further candidates
// for that host are refused without another request until it expires.
type PageFetcher struct {
	client    *http.Client
	cacheSvc  cache.CacheService
	blockTime time.Duration
	log       *logger.Logger
}

var _ Fetcher = (*PageFetcher)(nil)

// NewPageFetcher creates a fetcher with the given timeout. cacheSvc may
// be nil, which disables rate-limit blocking.
func NewPageFetcher(timeout time.Duration, cacheSvc cache.CacheService, blockTime time.Duration) *PageFetcher {
	return &PageFetcher{
		client:    &http.Client{Timeout: timeout},
		cacheSvc:  cacheSvc,
		blockTime: blockTime,
		log:       logger.ForFetcher(),
	}
}

// Fetch implements Fetcher. A single attempt per candidate; timeouts and
// non-2xx statuses are plain transport failures.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	host := hostOf(rawURL)
	blockKey := "fetch_block:" + host

	if f.cacheSvc != nil {
		if _, err := f.cacheSvc.Get(blockKey); err == nil {
			return nil, fmt.Errorf("host %s is blocked for rate limiting", host)
		}
	}

	finalURL, body, err := helpers.FetchPage(ctx, f.client, rawURL)
	if err != nil {
		var scrapeErr *apperrors.ScrapeError
		if errors.As(err, &scrapeErr) && scrapeErr.Type == apperrors.ErrorTypeRateLimit && f.cacheSvc != nil {
			f.log.Warn().
				Str("host", host).
				Dur("block_time", f.blockTime).
				Msg("Rate limited, blocking host")
			if setErr := f.cacheSvc.Set(blockKey, []byte(fmt.Sprintf("%d", f.blockTime/time.Second)), f.blockTime); setErr != nil {
				f.log.Warn().
					Str("host", host).
					Err(setErr).
					Msg("Failed to store rate-limit block")
			}
		}
		return nil, err
	}

	return &FetchResult{FinalURL: finalURL, Body: body}, nil
}
