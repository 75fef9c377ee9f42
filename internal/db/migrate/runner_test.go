package migrate

import "testing"

func TestRun_EmptyDSN(t *testing.T) {
	if err := Run("", "up"); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestRun_InvalidDirection(t *testing.T) {
	for _, direction := range []string{"", "sideways", "UP"} {
		if err := Run("postgres://localhost/cal", direction); err == nil {
			t.Errorf("Run(direction=%q) succeeded, want error", direction)
		}
	}
}
