package server

import (
	"net/http"
	"time"
)

// pendingResponse is the countdown target: the next item that will open by
// waiting, if any.
type pendingResponse struct {
	Item        int    `json:"item"`
	UnlockAt    string `json:"unlock_at"`
	RemainingMS int64  `json:"remaining_ms"`
}

// handleCalendarState handles GET /calendar-state: the open/closed state of
// every item plus the next pending unlock, computed from the schedule and
// the shared overrides. Client-local overrides are by definition not visible
// here; clients lay their own on top.
func (s *Server) handleCalendarState(w http.ResponseWriter, r *http.Request) {
	remote, err := s.repo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	now := time.Now()

	items := make(map[int]bool, s.engine.Items())
	for item := 1; item <= s.engine.Items(); item++ {
		items[item] = s.engine.IsOpen(item, now, nil, remote)
	}

	resp := map[string]any{"items": items}
	if next, ok := s.engine.NextPendingUnlock(now, nil, remote); ok {
		resp["next"] = pendingResponse{
			Item:        next.Item,
			UnlockAt:    next.UnlockAt.UTC().Format(time.RFC3339),
			RemainingMS: next.Remaining.Milliseconds(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
