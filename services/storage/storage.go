package storage

import "opdeals/dealworker/internal/scraper"

// StoredDeal is a persisted deal with the timestamp assigned at save
// time. The pipeline's output is timestamp-free on purpose.
type StoredDeal struct {
	scraper.Deal
	Timestamp string `json:"timestamp"`
}

// Storage represents an append-only sink for accepted deals. There is no
// update or delete path for a stored deal.
type Storage interface {
	// Save appends a deal, assigning its timestamp, and returns the
	// stored record
	Save(deal scraper.Deal) (StoredDeal, error)

	// List returns all stored deals in insertion order
	List() ([]StoredDeal, error)
}
