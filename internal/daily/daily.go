// Package daily owns the once-per-day records of the game: the day's pick
// and each player's single try per day.
package daily

import (
	"errors"
	"time"
)

// dayLayout is the calendar-day key format.
const dayLayout = "2006-01-02"

var (
	// ErrDuplicate is returned by a Store when a uniqueness constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrDuplicateAttempt means the user already has a try for today.
	ErrDuplicateAttempt = errors.New("daily try already exists")
	// ErrNoPick means no language has been picked for today yet.
	ErrNoPick = errors.New("no pick for today")
	// ErrPickUnavailable means today's pick could not be persisted.
	ErrPickUnavailable = errors.New("daily pick unavailable")
)

// Calendar maps instants to calendar days in a fixed location.
// Days follow the local date, not a rolling 24h window.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar returns a Calendar for loc. A nil loc means time.Local,
// a nil now means time.Now.
func NewCalendar(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

// Now returns the current instant in the calendar's location.
func (c Calendar) Now() time.Time { return c.now().In(c.loc) }

// Today returns today's day key.
func (c Calendar) Today() string { return c.Key(c.now()) }

// Key returns the YYYY-MM-DD key of t.
func (c Calendar) Key(t time.Time) string { return t.In(c.loc).Format(dayLayout) }

// SameDay reports whether a and b fall on the same calendar date.
func (c Calendar) SameDay(a, b time.Time) bool { return c.Key(a) == c.Key(b) }
