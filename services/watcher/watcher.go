package watcher

import (
	"context"
	"encoding/json"

	"opdeals/dealworker/internal/scraper"
	"opdeals/dealworker/logger"
	"opdeals/dealworker/services/publisher"
	"opdeals/dealworker/services/source"
	"opdeals/dealworker/services/storage"
)

// Scraper is the pipeline surface the watcher drives. nil means the
// candidate produced no deal; reasons live in the pipeline's logs.
type Scraper interface {
	Scrape(ctx context.Context, url string) *scraper.Deal
}

// Watcher consumes inbound message texts, scans them for candidate URLs
// and runs each through the extraction pipeline, persisting and
// publishing accepted deals.
type Watcher struct {
	ctx        context.Context
	source     source.Source
	pipeline   Scraper
	store      storage.Storage
	pub        publisher.Publisher
	publishKey string
	log        *logger.Logger
}

// NewWatcher creates a new watcher. pub may be nil, which disables
// downstream publishing.
func NewWatcher(
	ctx context.Context,
	src source.Source,
	pipeline Scraper,
	store storage.Storage,
	pub publisher.Publisher,
	publishKey string,
) *Watcher {
	return &Watcher{
		ctx:        ctx,
		source:     src,
		pipeline:   pipeline,
		store:      store,
		pub:        pub,
		publishKey: publishKey,
		log:        logger.ForWatcher(),
	}
}

// Start blocks, processing messages until the context is cancelled or
// the source fails.
func (w *Watcher) Start() error {
	w.log.Info().Msg("Watching for new messages")
	return w.source.Listen(w.ctx, w.HandleMessage)
}

// HandleMessage scans one message text and processes every candidate URL
// sequentially, in scan order. A candidate that produces nothing is
// dropped without affecting the rest.
func (w *Watcher) HandleMessage(text string) {
	urls := scraper.ScanURLs(text)
	if len(urls) == 0 {
		return
	}

	w.log.Debug().
		Int("candidates", len(urls)).
		Msg("Found candidate URLs")

	for _, url := range urls {
		deal := w.pipeline.Scrape(w.ctx, url)
		if deal == nil {
			continue
		}

		stored, err := w.store.Save(*deal)
		if err != nil {
			w.log.Error().
				Str("url", deal.URL).
				Err(err).
				Msg("Failed to save deal")
			continue
		}

		w.log.Info().
			Str("title", stored.Title).
			Str("price", stored.Price).
			Str("url", stored.URL).
			Msg("Saved deal")

		w.publish(stored)
	}
}

// publish forwards a stored deal downstream; publish errors are logged,
// never fatal to the loop.
func (w *Watcher) publish(stored storage.StoredDeal) {
	if w.pub == nil {
		return
	}

	data, err := json.Marshal(stored)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to encode deal")
		return
	}

	if err := w.pub.Publish(w.publishKey, data); err != nil {
		w.log.Error().
			Str("url", stored.URL).
			Err(err).
			Msg("Failed to publish deal")
	}
}
