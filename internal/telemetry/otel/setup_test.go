package otel

import (
	"context"
	"testing"
)

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders empty endpoint: %v", err)
	}
	if providers.TracerProvider == nil || providers.MeterProvider == nil || providers.LoggerProvider == nil {
		t.Error("no-op providers must all be non-nil")
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("no-op shutdown returned error: %v", err)
	}
}

func TestNewProviders_WhitespaceEndpoint(t *testing.T) {
	providers, err := NewProviders(context.Background(), "   ", "test-service", false)
	if err != nil {
		t.Fatalf("NewProviders whitespace endpoint: %v", err)
	}
	if providers == nil {
		t.Fatal("providers should not be nil")
	}
}

func TestNewProviders_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"http://[invalid", "http://"} {
		if _, err := NewProviders(context.Background(), endpoint, "test-service", false); err == nil {
			t.Errorf("NewProviders(%q) should return error", endpoint)
		}
	}
}

func TestDialTarget(t *testing.T) {
	cases := []struct {
		endpoint      string
		wantTarget    string
		wantPlaintext bool
	}{
		{"localhost:4317", "localhost:4317", true},
		{"http://collector:4317", "collector:4317", true},
		{"https://collector:4317", "collector:4317", false},
		{"https://collector:4317/v1/traces", "collector:4317", false},
	}
	for _, tc := range cases {
		target, plaintext, err := dialTarget(tc.endpoint)
		if err != nil {
			t.Errorf("dialTarget(%q): %v", tc.endpoint, err)
			continue
		}
		if target != tc.wantTarget || plaintext != tc.wantPlaintext {
			t.Errorf("dialTarget(%q) = (%q, %v), want (%q, %v)",
				tc.endpoint, target, plaintext, tc.wantTarget, tc.wantPlaintext)
		}
	}
}

func TestSetGlobal_NoOpProviders(t *testing.T) {
	providers, err := NewProviders(context.Background(), "", "test-service", false)
	if err != nil {
		t.Fatal(err)
	}
	// Must not panic with no-op providers.
	providers.SetGlobal()
}
