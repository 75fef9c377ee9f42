// Package server wires the HTTP surface: session issue/verify, the shared
// override store endpoints, and the calendar state read used by the
// countdown display.
package server

import (
	"encoding/json"
	"net/http"

	"clue-calendar/backend/internal/config"
	"clue-calendar/backend/internal/override/repository"
	"clue-calendar/backend/internal/security"
	"clue-calendar/backend/internal/unlock"
)

// CookieName is the session cookie the operator endpoints trust.
const CookieName = "AdminSession"

// Server holds the dependencies of every HTTP handler.
type Server struct {
	repo   repository.Repository
	engine *unlock.Engine
	codes  *security.CodeChecker
	// tokens is nil when SESSION_SIGNING_KEY is unset; handlers that need it
	// report the misconfiguration as a 500 on that request.
	tokens *security.Tokens
}

// New returns a Server over the given store and decision engine, with
// credentials taken from cfg.
func New(cfg *config.Config, repo repository.Repository, engine *unlock.Engine) *Server {
	s := &Server{
		repo:   repo,
		engine: engine,
		codes:  security.NewCodeChecker(cfg.AdminCode, cfg.AdminCodeHash),
	}
	if cfg.SessionSigningKey != "" {
		s.tokens = security.NewTokens(cfg.SessionSigningKey, cfg.SessionTTL())
	}
	return s
}

// Handler returns an http.Handler with all routes registered. When t is
// non-nil every request passes through the telemetry middleware.
func (s *Server) Handler(t *Telemetry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", s.handleLogin)
	mux.HandleFunc("POST /session/logout", s.handleLogout)
	mux.HandleFunc("GET /session", s.handleSessionStatus)
	mux.HandleFunc("GET /override-state", s.handleGetOverrides)
	mux.HandleFunc("POST /override-state", s.requireOperator(s.handleMutateOverrides))
	mux.HandleFunc("GET /calendar-state", s.handleCalendarState)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if t == nil {
		return mux
	}
	return t.Middleware(mux)
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
