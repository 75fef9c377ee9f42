// Package unlock decides whether items are open and derives the next pending
// unlock for countdown display. The engine is pure: override snapshots are
// passed in explicitly, never read from hidden state, so every decision is
// reproducible from its arguments.
package unlock

import (
	"time"

	"clue-calendar/backend/internal/override/domain"
	"clue-calendar/backend/internal/schedule"
)

// Engine evaluates the unlock rules against a resolved schedule.
type Engine struct {
	sched *schedule.Schedule
}

// New returns an Engine over the given schedule.
func New(sched *schedule.Schedule) *Engine {
	return &Engine{sched: sched}
}

// Items returns the number of items the engine decides over.
func (e *Engine) Items() int {
	return e.sched.Items()
}

// IsOpen reports whether item is accessible at now, given the client's own
// local override snapshot and the shared remote snapshot. Either snapshot
// may be nil. Precedence, first match wins:
//
//  1. hard-locked items are closed, unconditionally
//  2. a local override entry
//  3. a remote override entry
//  4. now at or past the nominal unlock instant
//
// Hard-lock beats even the client's own local override because it is an
// administrative kill-switch; local beats remote because it is specific to
// the requester. Items outside the schedule are closed.
func (e *Engine) IsOpen(item int, now time.Time, local, remote domain.Map) bool {
	at, ok := e.sched.UnlockAt(item)
	if !ok {
		return false
	}
	if e.sched.HardLocked(item) {
		return false
	}
	if v, ok := local[item]; ok {
		return v
	}
	if v, ok := remote[item]; ok {
		return v
	}
	return !now.Before(at)
}

// Pending describes the next item that will open by the passage of time.
type Pending struct {
	Item      int
	UnlockAt  time.Time
	Remaining time.Duration
}

// NextPendingUnlock returns the closed item with the smallest positive time
// remaining until its nominal unlock, or false when nothing is pending.
// Items already open are skipped; so are closed items whose instant has
// passed (held closed by an override or hard-lock), since waiting will never
// open them.
func (e *Engine) NextPendingUnlock(now time.Time, local, remote domain.Map) (Pending, bool) {
	var best Pending
	for item := 1; item <= e.sched.Items(); item++ {
		if e.IsOpen(item, now, local, remote) {
			continue
		}
		at, _ := e.sched.UnlockAt(item)
		remaining := at.Sub(now)
		if remaining <= 0 {
			continue
		}
		if best.Item == 0 || remaining < best.Remaining {
			best = Pending{Item: item, UnlockAt: at, Remaining: remaining}
		}
	}
	return best, best.Item != 0
}
