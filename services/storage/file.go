package storage

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"opdeals/dealworker/internal/scraper"
	apperrors "opdeals/dealworker/pkg/errors"
)

// FileStorage keeps deals as a JSON array on disk. Appends are
// serialized with a mutex; concurrent savers never interleave writes.
type FileStorage struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage at path, creating an empty deal
// list when the file does not exist yet.
func NewFileStorage(path string) (*FileStorage, error) {
	s := &FileStorage{
		path: path,
		now:  time.Now,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write([]StoredDeal{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save appends the deal with a save-time timestamp.
func (s *FileStorage) Save(deal scraper.Deal) (StoredDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deals, err := s.read()
	if err != nil {
		return StoredDeal{}, err
	}

	stored := StoredDeal{
		Deal:      deal,
		Timestamp: s.now().Format(time.RFC3339),
	}
	deals = append(deals, stored)

	if err := s.write(deals); err != nil {
		return StoredDeal{}, err
	}
	return stored, nil
}

// List returns all stored deals in insertion order.
func (s *FileStorage) List() ([]StoredDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStorage) read() ([]StoredDeal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []StoredDeal{}, nil
		}
		return nil, apperrors.NewStorage("failed to read deal file", err)
	}

	var deals []StoredDeal
	if err := json.Unmarshal(data, &deals); err != nil {
		return nil, apperrors.NewStorage("deal file is corrupt", err)
	}
	return deals, nil
}

func (s *FileStorage) write(deals []StoredDeal) error {
	data, err := json.MarshalIndent(deals, "", "    ")
	if err != nil {
		return apperrors.NewStorage("failed to encode deals", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return apperrors.NewStorage("failed to write deal file", err)
	}
	return nil
}
