package server

import (
	"net/http"
	"time"
)

// adminPassHeader carries the operator shared secret for header-based
// mutation, the pre-session API kept for scripted clients.
const adminPassHeader = "x-admin-pass"

// requireOperator gates next behind operator authority: either a valid,
// unexpired session cookie or the shared secret in the x-admin-pass header.
// Rejected requests never reach next, so a failed mutation leaves the store
// untouched. The rejection is information-minimal: every failure mode is the
// same 401.
func (s *Server) requireOperator(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.tokens != nil {
			if cookie, err := r.Cookie(CookieName); err == nil {
				if _, ok := s.tokens.Verify(cookie.Value, time.Now()); ok {
					next(w, r)
					return
				}
			}
		}
		if s.codes.Check(r.Header.Get(adminPassHeader)) {
			next(w, r)
			return
		}
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
}
