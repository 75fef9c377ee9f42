package server

import (
	"context"
	"net/http"
	"testing"
)

func TestGetOverrides_OpenRead(t *testing.T) {
	s, repo := newTestServer(t)
	if _, err := repo.Patch(context.Background(), []int{3}, nil); err != nil {
		t.Fatal(err)
	}

	w := doRequest(t, s, http.MethodGet, "/override-state", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	overrides, ok := body["overrides"].(map[string]any)
	if !ok {
		t.Fatalf("body = %v", body)
	}
	if overrides["3"] != true {
		t.Errorf("overrides = %v", overrides)
	}
}

func TestMutateOverrides_NoCredentialLeavesStoreUntouched(t *testing.T) {
	s, repo := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/override-state", `{"unlock":[5]}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "unauthorized" {
		t.Errorf("body = %v", body)
	}

	m, err := repo.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 0 {
		t.Errorf("store mutated by rejected request: %v", m)
	}
}

func TestMutateOverrides_WithSessionCookie(t *testing.T) {
	s, _ := newTestServer(t)
	cookie := sessionCookie(t, s)

	w := doRequest(t, s, http.MethodPost, "/override-state", `{"unlock":[5]}`, func(r *http.Request) {
		r.AddCookie(cookie)
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["ok"] != true {
		t.Errorf("body = %v", body)
	}

	// The write is visible to a subsequent unauthenticated read.
	w = doRequest(t, s, http.MethodGet, "/override-state", "", nil)
	overrides := decodeBody(t, w)["overrides"].(map[string]any)
	if overrides["5"] != true {
		t.Errorf("overrides = %v", overrides)
	}
}

func TestMutateOverrides_WithHeaderSecret(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/override-state", `{"lock":[2]}`, func(r *http.Request) {
		r.Header.Set("x-admin-pass", "letmein")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	overrides := decodeBody(t, w)["overrides"].(map[string]any)
	if overrides["2"] != false {
		t.Errorf("overrides = %v", overrides)
	}
}

func TestMutateOverrides_WrongHeaderSecret(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/override-state", `{"unlock":[5]}`, func(r *http.Request) {
		r.Header.Set("x-admin-pass", "guess")
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMutateOverrides_ExpiredCookieFallsThrough(t *testing.T) {
	s, _ := newTestServer(t)

	// A garbage cookie is not a session, but a correct header still
	// authorizes the request.
	w := doRequest(t, s, http.MethodPost, "/override-state", `{"unlock":[1]}`, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
		r.Header.Set("x-admin-pass", "letmein")
	})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestMutateOverrides_Clear(t *testing.T) {
	s, repo := newTestServer(t)
	if _, err := repo.Patch(context.Background(), []int{1, 2}, nil); err != nil {
		t.Fatal(err)
	}

	w := doRequest(t, s, http.MethodPost, "/override-state", `{"action":"clear"}`, func(r *http.Request) {
		r.Header.Set("x-admin-pass", "letmein")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	overrides := decodeBody(t, w)["overrides"].(map[string]any)
	if len(overrides) != 0 {
		t.Errorf("overrides = %v, want empty", overrides)
	}
}

func TestMutateOverrides_Replace(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/override-state",
		`{"action":"set","overrides":{"1":true,"40":true}}`,
		func(r *http.Request) { r.Header.Set("x-admin-pass", "letmein") })
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	overrides := decodeBody(t, w)["overrides"].(map[string]any)
	if len(overrides) != 1 || overrides["1"] != true {
		t.Errorf("overrides = %v, want only id 1 (40 is out of range)", overrides)
	}
}

func TestMutateOverrides_BadBodies(t *testing.T) {
	s, _ := newTestServer(t)
	auth := func(r *http.Request) { r.Header.Set("x-admin-pass", "letmein") }

	for name, body := range map[string]string{
		"malformed JSON": `{`,
		"empty object":   `{}`,
		"unknown action": `{"action":"explode"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/override-state", body, auth)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
