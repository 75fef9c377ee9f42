// Package schedule maps item ids to their nominal unlock instants. Three
// policies are supported — per-item absolute instants, a whole-day series
// offset from a start date, and civil-day midnights within one month — with
// absolute taking precedence over series, and series over civil-day.
// Configuration problems are load errors, never runtime faults.
package schedule

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"clue-calendar/backend/internal/clock"
)

// Sentinel errors for schedule validation.
var (
	ErrNoPolicy      = errors.New("schedule: no unlock policy configured")
	ErrNotMonotonic  = errors.New("schedule: unlock instants must be non-decreasing in item id")
	ErrDayOutOfMonth = errors.New("schedule: item day exceeds days in configured month")
)

// File is the YAML shape of a schedule configuration.
type File struct {
	// Timezone is the IANA zone all civil readings are interpreted in.
	Timezone string `yaml:"timezone"`
	// Items is the number of items in the series (1..31).
	Items int `yaml:"items"`
	// Absolute maps item ids to literal RFC 3339 unlock instants.
	Absolute map[int]string `yaml:"absolute"`
	// Series unlocks item N at (Start + N-1 whole days) at Time.
	Series *SeriesRule `yaml:"series"`
	// Civil unlocks item N at civil midnight of day N in Year/Month.
	Civil *CivilRule `yaml:"civil"`
	// HardLocked lists items forced closed regardless of time or overrides.
	HardLocked []int `yaml:"hard_locked"`
}

// SeriesRule is the series-offset policy: a start civil date plus a fixed
// time of day. Day arithmetic is calendar-based, so an unlock interval
// spanning a daylight-saving change is still exactly one civil day.
type SeriesRule struct {
	// Start is the first item's civil date, "2006-01-02".
	Start string `yaml:"start"`
	// Time is the civil time of day every item unlocks at, "15:04" or
	// "15:04:05". Empty means midnight.
	Time string `yaml:"time"`
}

// CivilRule is the civil-day policy: item N opens at midnight of day N in
// the configured month.
type CivilRule struct {
	Year  int        `yaml:"year"`
	Month time.Month `yaml:"month"`
}

// Schedule is a validated, fully resolved unlock schedule.
type Schedule struct {
	clk        *clock.Clock
	items      int
	unlockAt   []time.Time // index i holds item i+1
	hardLocked map[int]bool
}

// Load reads and resolves the schedule file at path.
func Load(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schedule: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse resolves a YAML schedule configuration. Every item must be covered
// by some policy, the resolved instants must be non-decreasing in item id,
// and civil-day items must exist in the configured month.
func Parse(data []byte) (*Schedule, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("schedule: parse: %w", err)
	}
	return Resolve(&f)
}

// Resolve validates f and computes the nominal unlock instant of every item.
func Resolve(f *File) (*Schedule, error) {
	if f.Timezone == "" {
		return nil, errors.New("schedule: timezone must be set")
	}
	clk, err := clock.New(f.Timezone)
	if err != nil {
		return nil, err
	}
	if f.Items < 1 || f.Items > 31 {
		return nil, fmt.Errorf("schedule: items must be 1..31, got %d", f.Items)
	}
	if len(f.Absolute) == 0 && f.Series == nil && f.Civil == nil {
		return nil, ErrNoPolicy
	}

	var seriesTime clock.Civil
	var seriesStart time.Time
	if f.Series != nil {
		seriesStart, err = time.Parse("2006-01-02", f.Series.Start)
		if err != nil {
			return nil, fmt.Errorf("schedule: series start: %w", err)
		}
		if f.Series.Time != "" {
			tod, err := parseTimeOfDay(f.Series.Time)
			if err != nil {
				return nil, err
			}
			seriesTime = tod
		}
	}
	if f.Civil != nil {
		if f.Civil.Month < time.January || f.Civil.Month > time.December {
			return nil, fmt.Errorf("schedule: civil month must be 1..12, got %d", int(f.Civil.Month))
		}
	}

	unlockAt := make([]time.Time, f.Items)
	for i := range unlockAt {
		item := i + 1
		switch {
		case f.Absolute[item] != "":
			t, err := time.Parse(time.RFC3339, f.Absolute[item])
			if err != nil {
				return nil, fmt.Errorf("schedule: absolute instant for item %d: %w", item, err)
			}
			unlockAt[i] = t
		case f.Series != nil:
			y, m, d := clock.AddDays(seriesStart.Year(), seriesStart.Month(), seriesStart.Day(), item-1)
			cv := seriesTime
			cv.Year, cv.Month, cv.Day = y, m, d
			unlockAt[i] = clk.Instant(cv)
		case f.Civil != nil:
			if item > clock.DaysInMonth(f.Civil.Year, f.Civil.Month) {
				return nil, fmt.Errorf("%w: item %d in %d-%02d", ErrDayOutOfMonth, item, f.Civil.Year, int(f.Civil.Month))
			}
			unlockAt[i] = clk.Midnight(f.Civil.Year, f.Civil.Month, item)
		default:
			return nil, fmt.Errorf("schedule: item %d has no unlock policy", item)
		}
	}
	for i := 1; i < len(unlockAt); i++ {
		if unlockAt[i].Before(unlockAt[i-1]) {
			return nil, fmt.Errorf("%w: item %d before item %d", ErrNotMonotonic, i+1, i)
		}
	}

	hardLocked := make(map[int]bool, len(f.HardLocked))
	for _, item := range f.HardLocked {
		if item < 1 || item > f.Items {
			return nil, fmt.Errorf("schedule: hard_locked item %d out of range", item)
		}
		hardLocked[item] = true
	}

	return &Schedule{clk: clk, items: f.Items, unlockAt: unlockAt, hardLocked: hardLocked}, nil
}

// Items returns the number of items in the schedule.
func (s *Schedule) Items() int {
	return s.items
}

// Clock returns the schedule's zone clock.
func (s *Schedule) Clock() *clock.Clock {
	return s.clk
}

// UnlockAt returns the nominal unlock instant for item, and false if the
// item is outside the schedule.
func (s *Schedule) UnlockAt(item int) (time.Time, bool) {
	if item < 1 || item > s.items {
		return time.Time{}, false
	}
	return s.unlockAt[item-1], true
}

// HardLocked reports whether item carries the administrative kill-switch.
func (s *Schedule) HardLocked(item int) bool {
	return s.hardLocked[item]
}

func parseTimeOfDay(v string) (clock.Civil, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return clock.Civil{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return clock.Civil{}, fmt.Errorf("schedule: invalid time of day %q", v)
}
