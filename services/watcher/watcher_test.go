package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"opdeals/dealworker/internal/scraper"
	"opdeals/dealworker/services/publisher"
	"opdeals/dealworker/services/source"
	"opdeals/dealworker/services/storage"
)

// mockSource delivers a fixed set of message texts
type mockSource struct {
	texts []string
}

var _ source.Source = (*mockSource)(nil)

func (m *mockSource) Listen(ctx context.Context, handler func(text string)) error {
	for _, text := range m.texts {
		handler(text)
	}
	return nil
}

func (m *mockSource) Close() error { return nil }

// mockScraper maps candidate URLs to canned deals
type mockScraper struct {
	deals map[string]*scraper.Deal
	seen  []string
}

var _ Scraper = (*mockScraper)(nil)

func (m *mockScraper) Scrape(ctx context.Context, url string) *scraper.Deal {
	m.seen = append(m.seen, url)
	return m.deals[url]
}

// mockStorage records saved deals in order
type mockStorage struct {
	mu    sync.Mutex
	saved []storage.StoredDeal
	err   error
}

var _ storage.Storage = (*mockStorage)(nil)

func (m *mockStorage) Save(deal scraper.Deal) (storage.StoredDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return storage.StoredDeal{}, m.err
	}
	stored := storage.StoredDeal{Deal: deal, Timestamp: "2026-01-01T00:00:00Z"}
	m.saved = append(m.saved, stored)
	return stored, nil
}

func (m *mockStorage) List() ([]storage.StoredDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, nil
}

// mockPublisher records published messages
type mockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

var _ publisher.Publisher = (*mockPublisher)(nil)

func (m *mockPublisher) Publish(key string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	msg := make([]byte, len(message))
	copy(msg, message)
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func TestWatcherProcessesCandidatesInScanOrder(t *testing.T) {
	pipeline := &mockScraper{deals: map[string]*scraper.Deal{
		"https://a.co/x": {Title: "First", Price: "100", MRP: "200", Image: "i", Source: "Amazon", URL: "https://a.co/x"},
		"https://b.co/y": {Title: "Second", Price: "300", MRP: "400", Image: "i", Source: "Amazon", URL: "https://b.co/y"},
	}}
	store := &mockStorage{}
	pub := &mockPublisher{}

	w := NewWatcher(context.Background(), &mockSource{}, pipeline, store, pub, "deal")
	w.HandleMessage("check this https://a.co/x and https://b.co/y")

	assert.Equal(t, []string{"https://a.co/x", "https://b.co/y"}, pipeline.seen)
	assert.Len(t, store.saved, 2)
	assert.Equal(t, "First", store.saved[0].Title)
	assert.Equal(t, "Second", store.saved[1].Title)
	assert.Len(t, pub.messages, 2)
}

func TestWatcherSkipsRejectedCandidates(t *testing.T) {
	// Only the second candidate produces a deal; the first must not
	// abort processing
	pipeline := &mockScraper{deals: map[string]*scraper.Deal{
		"https://b.co/y": {Title: "Second", Price: "300", MRP: "400", Image: "i", Source: "Amazon", URL: "https://b.co/y"},
	}}
	store := &mockStorage{}

	w := NewWatcher(context.Background(), &mockSource{}, pipeline, store, nil, "deal")
	w.HandleMessage("https://a.co/x then https://b.co/y")

	assert.Len(t, pipeline.seen, 2)
	assert.Len(t, store.saved, 1)
	assert.Equal(t, "Second", store.saved[0].Title)
}

func TestWatcherIgnoresMessagesWithoutLinks(t *testing.T) {
	pipeline := &mockScraper{}
	store := &mockStorage{}

	w := NewWatcher(context.Background(), &mockSource{}, pipeline, store, nil, "deal")
	w.HandleMessage("no links here")

	assert.Empty(t, pipeline.seen)
	assert.Empty(t, store.saved)
}

func TestWatcherLogsAndContinuesOnSaveError(t *testing.T) {
	pipeline := &mockScraper{deals: map[string]*scraper.Deal{
		"https://a.co/x": {Title: "First", Price: "100", MRP: "200", Image: "i", Source: "Amazon", URL: "https://a.co/x"},
	}}
	store := &mockStorage{err: errors.New("disk full")}
	pub := &mockPublisher{}

	w := NewWatcher(context.Background(), &mockSource{}, pipeline, store, pub, "deal")
	w.HandleMessage("https://a.co/x")

	// Save failed, so nothing was published
	assert.Empty(t, pub.messages)
}

func TestWatcherStartDrivesSource(t *testing.T) {
	pipeline := &mockScraper{deals: map[string]*scraper.Deal{
		"https://a.co/x": {Title: "First", Price: "100", MRP: "200", Image: "i", Source: "Amazon", URL: "https://a.co/x"},
	}}
	store := &mockStorage{}
	src := &mockSource{texts: []string{"deal at https://a.co/x", "nothing"}}

	w := NewWatcher(context.Background(), src, pipeline, store, nil, "deal")
	assert.NoError(t, w.Start())
	assert.Len(t, store.saved, 1)
}
