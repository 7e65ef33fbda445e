package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"opdeals/dealworker/internal/scraper"
	"opdeals/dealworker/services/storage"
)

type memStorage struct {
	mu    sync.Mutex
	deals []storage.StoredDeal
}

var _ storage.Storage = (*memStorage)(nil)

func (m *memStorage) Save(deal scraper.Deal) (storage.StoredDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := storage.StoredDeal{Deal: deal, Timestamp: "2026-01-01T00:00:00Z"}
	m.deals = append(m.deals, stored)
	return stored, nil
}

func (m *memStorage) List() ([]storage.StoredDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deals, nil
}

type mockMessenger struct {
	sendErr error
}

func (m *mockMessenger) SendCode(ctx context.Context, phone string) (map[string]string, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return map[string]string{"status": "code_sent"}, nil
}

func (m *mockMessenger) VerifyCode(ctx context.Context, code, password string) (map[string]string, error) {
	return map[string]string{"status": "authorized"}, nil
}

func TestStatusEndpoint(t *testing.T) {
	server := NewServer(&memStorage{}, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestDealsEndpoint(t *testing.T) {
	store := &memStorage{}
	store.Save(scraper.Deal{Title: "Widget Pro", Price: "1299", MRP: "1999", Image: "i", Source: "Amazon", URL: "u"})

	server := NewServer(store, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/deals", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var deals []storage.StoredDeal
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deals))
	assert.Len(t, deals, 1)
	assert.Equal(t, "Widget Pro", deals[0].Title)
}

func TestAuthWithoutMessenger(t *testing.T) {
	server := NewServer(&memStorage{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"phone":"+911234567890"}`))
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthPassThrough(t *testing.T) {
	server := NewServer(&memStorage{}, &mockMessenger{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"phone":"+911234567890"}`))
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "code_sent", body["status"])

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/auth/verify", strings.NewReader(`{"code":"12345"}`))
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMessengerError(t *testing.T) {
	server := NewServer(&memStorage{}, &mockMessenger{sendErr: errors.New("provider unavailable")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"phone":"+911234567890"}`))
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
