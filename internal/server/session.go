package server

import (
	"encoding/json"
	"net/http"
	"time"
)

type loginRequest struct {
	Code string `json:"code"`
}

// handleLogin handles POST /session: a constant-time credential check that
// mints a signed session cookie on success.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.codes.Configured() || s.tokens == nil {
		writeError(w, http.StatusInternalServerError, "server misconfigured: set ADMIN_CODE and SESSION_SIGNING_KEY")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !s.codes.Check(req.Code) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "Invalid code"})
		return
	}

	token, exp, err := s.tokens.Issue(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "exp": exp.Unix()})
}

// handleLogout handles POST /session/logout: overwrites the cookie with an
// immediately-expired placeholder. The token itself stays valid until its
// expiry if the client retained it; there is no server-side revocation.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleSessionStatus handles GET /session. A missing, malformed, expired,
// or tampered cookie reports inactive; it is never an error.
func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		writeError(w, http.StatusInternalServerError, "server misconfigured: set SESSION_SIGNING_KEY")
		return
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	exp, ok := s.tokens.Verify(cookie.Value, time.Now())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": true, "exp": exp.Unix()})
}
