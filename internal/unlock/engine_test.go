package unlock

import (
	"testing"
	"time"

	"clue-calendar/backend/internal/override/domain"
	"clue-calendar/backend/internal/schedule"
)

// testEngine resolves a 5-item schedule unlocking daily at midnight UTC
// starting 2025-12-01, with item 4 hard-locked.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	s, err := schedule.Resolve(&schedule.File{
		Timezone:   "UTC",
		Items:      5,
		Civil:      &schedule.CivilRule{Year: 2025, Month: time.December},
		HardLocked: []int{4},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return New(s)
}

func TestIsOpen_TimeOnly(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2025, time.December, 3, 12, 0, 0, 0, time.UTC)

	for item, want := range map[int]bool{1: true, 2: true, 3: true, 5: false} {
		if got := e.IsOpen(item, now, nil, nil); got != want {
			t.Errorf("IsOpen(%d) = %v, want %v", item, got, want)
		}
	}
}

func TestIsOpen_ExactBoundary(t *testing.T) {
	e := testEngine(t)
	at := time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC)

	if e.IsOpen(3, at.Add(-time.Second), nil, nil) {
		t.Error("item 3 open one second before its instant")
	}
	if !e.IsOpen(3, at, nil, nil) {
		t.Error("item 3 closed at its exact instant")
	}
}

func TestIsOpen_OutOfRange(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, item := range []int{0, -1, 6, 99} {
		if e.IsOpen(item, now, nil, nil) {
			t.Errorf("IsOpen(%d) = true for out-of-range item", item)
		}
	}
}

func TestIsOpen_Precedence(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2025, time.December, 3, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		item   int
		local  domain.Map
		remote domain.Map
		want   bool
	}{
		{"local opens a future item", 5, domain.Map{5: true}, nil, true},
		{"local closes an open item", 1, domain.Map{1: false}, nil, false},
		{"remote opens a future item", 5, nil, domain.Map{5: true}, true},
		{"remote closes an open item", 1, nil, domain.Map{1: false}, false},
		{"local beats remote", 5, domain.Map{5: false}, domain.Map{5: true}, false},
		{"local beats remote the other way", 5, domain.Map{5: true}, domain.Map{5: false}, true},
		{"hard-lock beats local open", 4, domain.Map{4: true}, nil, false},
		{"hard-lock beats remote open", 4, nil, domain.Map{4: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.IsOpen(tc.item, now, tc.local, tc.remote); got != tc.want {
				t.Errorf("IsOpen(%d) = %v, want %v", tc.item, got, tc.want)
			}
		})
	}
}

func TestNextPendingUnlock(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2025, time.December, 3, 12, 0, 0, 0, time.UTC)

	p, ok := e.NextPendingUnlock(now, nil, nil)
	if !ok {
		t.Fatal("expected a pending unlock")
	}
	// Items 4 and 5 are closed; item 4's instant (Dec 4) is nearer. The
	// hard-lock does not exclude it from the countdown while its instant is
	// still ahead.
	if p.Item != 4 {
		t.Errorf("pending item = %d, want 4", p.Item)
	}
	if want := 12 * time.Hour; p.Remaining != want {
		t.Errorf("remaining = %v, want %v", p.Remaining, want)
	}
	if want := time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC); !p.UnlockAt.Equal(want) {
		t.Errorf("unlock at = %v, want %v", p.UnlockAt, want)
	}
}

func TestNextPendingUnlock_SkipsOverriddenOpen(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2025, time.December, 3, 12, 0, 0, 0, time.UTC)

	// Items 4 and 5 both ahead; 5 forced open locally, 4 next by time.
	p, ok := e.NextPendingUnlock(now, domain.Map{4: true, 5: true}, nil)
	// 4 is hard-locked, so the local open does not apply and it stays
	// pending; 5 is open and skipped.
	if !ok || p.Item != 4 {
		t.Fatalf("pending = %+v ok=%v, want item 4", p, ok)
	}

	// With item 4 also past its instant nothing remains pending.
	later := time.Date(2025, time.December, 5, 12, 0, 0, 0, time.UTC)
	if _, ok := e.NextPendingUnlock(later, domain.Map{5: true}, nil); ok {
		t.Error("expected no pending unlock when all items are open or past due")
	}
}

func TestNextPendingUnlock_SkipsPastDueClosed(t *testing.T) {
	e := testEngine(t)
	// All instants have passed; item 2 is held closed by a remote override.
	now := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)

	if _, ok := e.NextPendingUnlock(now, nil, domain.Map{2: false}); ok {
		t.Error("an overridden past-due item is not pending; waiting cannot open it")
	}
}

func TestNextPendingUnlock_NothingScheduledAhead(t *testing.T) {
	e := testEngine(t)
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := e.NextPendingUnlock(now, nil, nil); ok {
		t.Error("expected no pending unlock after the whole series")
	}
}
