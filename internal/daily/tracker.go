// internal/daily/tracker.go
//
// Daily attempt tracking.
// Responsibilities:
//   - Record one outcome per user per calendar day.
//   - Look up a user's try for a given day.
//   - Summarize a user's history into Stats.
//
// Notes:
//   - Tries are keyed by the day the game was played, which a caller may
//     pass explicitly; a game that ends after midnight still belongs to
//     the day whose language it was played against.

package daily

import (
	"context"
	"errors"
	"fmt"
)

// Tracker enforces one recorded try per user per calendar day.
type Tracker struct {
	store Store
	cal   Calendar
}

// NewTracker returns a Tracker over store.
func NewTracker(store Store, cal Calendar) *Tracker {
	return &Tracker{store: store, cal: cal}
}

// RecordAttempt stores today's outcome for userID.
func (t *Tracker) RecordAttempt(ctx context.Context, userID string, success bool) error {
	return t.RecordAttemptOn(ctx, userID, t.cal.Today(), success)
}

// RecordAttemptOn stores userID's outcome for the given day key; an empty
// day means today. Returns ErrDuplicateAttempt if a try for that day already
// exists. The lookup is only a fast path; the store's unique index decides
// concurrent races.
func (t *Tracker) RecordAttemptOn(ctx context.Context, userID, day string, success bool) error {
	if day == "" {
		day = t.cal.Today()
	}
	existing, err := t.TryOn(ctx, userID, day)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateAttempt
	}
	_, err = t.store.InsertTry(ctx, Try{
		UserID:    userID,
		Success:   success,
		Day:       day,
		CreatedAt: t.cal.Now(),
	})
	if errors.Is(err, ErrDuplicate) {
		return ErrDuplicateAttempt
	}
	if err != nil {
		return fmt.Errorf("record daily try: %w", err)
	}
	return nil
}

// TodaysTry returns the user's try for today, or nil if there is none.
func (t *Tracker) TodaysTry(ctx context.Context, userID string) (*Try, error) {
	return t.TryOn(ctx, userID, t.cal.Today())
}

// TryOn returns the user's try for day, or nil if there is none.
func (t *Tracker) TryOn(ctx context.Context, userID, day string) (*Try, error) {
	tries, err := t.store.ListTries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read daily tries: %w", err)
	}
	for _, tr := range tries {
		if tr.Day == day {
			return &tr, nil
		}
	}
	return nil, nil
}

// Stats summarizes every try of userID.
func (t *Tracker) Stats(ctx context.Context, userID string) (Stats, error) {
	tries, err := t.store.ListTries(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("read daily tries: %w", err)
	}
	return Summarize(tries, t.cal.Today()), nil
}
