package server

import (
	"errors"
	"io"
	"net/http"

	"clue-calendar/backend/internal/override/domain"
	"clue-calendar/backend/internal/override/repository"
)

// handleGetOverrides handles GET /override-state. Reading requires no
// authority; the map is the public unlock signal.
func (s *Server) handleGetOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := s.repo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"overrides": overrides})
}

// handleMutateOverrides handles POST /override-state. requireOperator has
// already vouched for the caller; the body must decode to exactly one
// mutation variant.
func (s *Server) handleMutateOverrides(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	mut, err := domain.DecodeMutation(body)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMutation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	overrides, err := repository.Mutate(r.Context(), s.repo, mut)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "overrides": overrides})
}
