package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"opdeals/dealworker/logger"
	"opdeals/dealworker/services/storage"
)

// Messenger is the pass-through surface to the external messaging
// provider's auth flow. The worker never implements it itself; a bridge
// process does.
type Messenger interface {
	SendCode(ctx context.Context, phone string) (map[string]string, error)
	VerifyCode(ctx context.Context, code, password string) (map[string]string, error)
}

// Server exposes the small administrative API: status, stored deals and
// the messenger auth pass-through.
type Server struct {
	store     storage.Storage
	messenger Messenger
	log       *logger.Logger
}

// NewServer creates an API server. messenger may be nil; the auth
// endpoints then answer 503.
func NewServer(store storage.Storage, messenger Messenger) *Server {
	return &Server{
		store:     store,
		messenger: messenger,
		log:       logger.ForAPI(),
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/deals", s.handleDeals)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/verify", s.handleVerify)
	return mux
}

// ListenAndServe runs the API server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", addr).Msg("Admin API listening")
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "opdeals-dealworker",
	})
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list deals")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "failed to list deals"})
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

type loginRequest struct {
	Phone string `json:"phone"`
}

type verifyRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.messenger == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "messenger not configured"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	res, err := s.messenger.SendCode(r.Context(), req.Phone)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if s.messenger == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "messenger not configured"})
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	res, err := s.messenger.VerifyCode(r.Context(), req.Code, req.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
