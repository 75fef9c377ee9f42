// Package clock converts between absolute instants and civil readings in a
// fixed named time zone, consulting the zone's rules at the instant in
// question rather than assuming a constant offset.
package clock

import (
	"fmt"
	"time"
)

// Civil is a wall-clock reading: year, month, day, hour, minute, second, and
// a sub-second remainder. It carries no zone; interpretation belongs to the
// Clock that produced or consumes it.
type Civil struct {
	Year       int
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// Clock converts instants to civil readings and back in one named zone.
type Clock struct {
	loc *time.Location
}

// New returns a Clock for the named IANA zone (e.g. "Europe/Madrid").
func New(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock: load zone %q: %w", zone, err)
	}
	return &Clock{loc: loc}, nil
}

// Location returns the clock's zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Civil returns the civil reading of t in the clock's zone.
func (c *Clock) Civil(t time.Time) Civil {
	t = t.In(c.loc)
	y, m, d := t.Date()
	return Civil{
		Year:       y,
		Month:      m,
		Day:        d,
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}
}

// Instant returns the absolute instant denoted by cv in the clock's zone.
//
// The zone offset is first estimated at the instant the reading would denote
// if it were UTC, applied, and then recomputed at the corrected instant. A
// stable offset means the reading is unambiguous. An unstable offset means cv
// falls in a seasonal-transition window: re-deriving from the second offset
// picks the post-transition instant for an ambiguous reading and the nearest
// valid instant for a reading skipped by the clock change.
func (c *Clock) Instant(cv Civil) time.Time {
	asUTC := time.Date(cv.Year, cv.Month, cv.Day, cv.Hour, cv.Minute, cv.Second, cv.Nanosecond, time.UTC)

	_, off1 := asUTC.In(c.loc).Zone()
	t1 := asUTC.Add(-time.Duration(off1) * time.Second)

	_, off2 := t1.In(c.loc).Zone()
	if off2 == off1 {
		return t1
	}
	return asUTC.Add(-time.Duration(off2) * time.Second)
}

// Midnight returns the instant of civil midnight on the given date.
func (c *Clock) Midnight(year int, month time.Month, day int) time.Time {
	return c.Instant(Civil{Year: year, Month: month, Day: day})
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays returns the calendar date n whole days after the given date. The
// arithmetic is calendar-based, so the result is unaffected by how many
// absolute hours any intervening day had.
func AddDays(year int, month time.Month, day, n int) (int, time.Month, int) {
	return time.Date(year, month, day+n, 0, 0, 0, 0, time.UTC).Date()
}
