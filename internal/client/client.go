// Package client is the HTTP client for the calendar service, used by the
// cluectl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clue-calendar/backend/internal/override/domain"
)

// Client talks to one calendar service instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Overrides fetches the shared override map.
func (c *Client) Overrides(ctx context.Context) (domain.Map, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/override-state", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Overrides domain.Map `json:"overrides"`
	}
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if body.Overrides == nil {
		return domain.Map{}, nil
	}
	return body.Overrides, nil
}

// SetOverrides patches the shared map, authorized by the operator secret.
// unlock ids are forced open, lock ids forced closed (lock wins on overlap).
func (c *Client) SetOverrides(ctx context.Context, unlock, lock []int, code string) (domain.Map, error) {
	return c.mutate(ctx, map[string]any{"unlock": unlock, "lock": lock}, code)
}

// ClearOverrides empties the shared map, authorized by the operator secret.
func (c *Client) ClearOverrides(ctx context.Context, code string) error {
	_, err := c.mutate(ctx, map[string]any{"action": "clear"}, code)
	return err
}

func (c *Client) mutate(ctx context.Context, body map[string]any, code string) (domain.Map, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/override-state", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-admin-pass", code)
	var resp struct {
		Overrides domain.Map `json:"overrides"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Overrides, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
