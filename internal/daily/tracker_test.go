package daily

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRecordAttemptOncePerDay(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		tr := NewTracker(s, fixedCalendar(day1))

		if err := tr.RecordAttempt(ctx, "u1", true); err != nil {
			t.Fatalf("first RecordAttempt() error: %v", err)
		}
		if err := tr.RecordAttempt(ctx, "u1", false); !errors.Is(err, ErrDuplicateAttempt) {
			t.Fatalf("second RecordAttempt() error = %v, want ErrDuplicateAttempt", err)
		}

		tries, err := s.ListTries(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(tries) != 1 {
			t.Fatalf("tries = %d, want 1", len(tries))
		}
		if !tries[0].Success {
			t.Error("the first outcome must be kept")
		}

		got, err := tr.TodaysTry(ctx, "u1")
		if err != nil || got == nil || !got.Success {
			t.Errorf("TodaysTry() = (%+v, %v), want the successful try", got, err)
		}
		if other, _ := tr.TodaysTry(ctx, "u2"); other != nil {
			t.Errorf("TodaysTry(u2) = %+v, want nil", other)
		}
	})
}

func TestRecordAttemptUniqueIndexIsAuthoritative(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		tr := NewTracker(blindStore{s}, fixedCalendar(day1))

		const n = 8
		errs := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(success bool) {
				defer wg.Done()
				errs <- tr.RecordAttempt(ctx, "u1", success)
			}(i%2 == 0)
		}
		wg.Wait()
		close(errs)

		var ok, dup int
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicateAttempt):
				dup++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		if ok != 1 || dup != n-1 {
			t.Errorf("ok = %d, dup = %d, want 1 and %d", ok, dup, n-1)
		}
		tries, _ := s.ListTries(ctx, "u1")
		if len(tries) != 1 {
			t.Errorf("tries = %d, want 1", len(tries))
		}
	})
}

func TestRecordAttemptNextDay(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := NewTracker(s, fixedCalendar(day1)).RecordAttempt(ctx, "u1", false); err != nil {
		t.Fatal(err)
	}
	if err := NewTracker(s, fixedCalendar(day1.AddDate(0, 0, 1))).RecordAttempt(ctx, "u1", true); err != nil {
		t.Fatalf("next day RecordAttempt() error: %v", err)
	}
}

func TestRecordAttemptOnPlayedDay(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		// the clock is already past midnight when the game ends
		tr := NewTracker(s, fixedCalendar(day1.AddDate(0, 0, 1)))
		if err := tr.RecordAttemptOn(ctx, "u1", "2024-03-10", true); err != nil {
			t.Fatalf("RecordAttemptOn() error: %v", err)
		}

		got, err := tr.TryOn(ctx, "u1", "2024-03-10")
		if err != nil || got == nil || !got.Success {
			t.Fatalf("TryOn(played day) = %+v, %v", got, err)
		}
		today, err := tr.TodaysTry(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if today != nil {
			t.Errorf("TodaysTry() = %+v, want no try on the new day", today)
		}
		if err := tr.RecordAttemptOn(ctx, "u1", "2024-03-10", false); !errors.Is(err, ErrDuplicateAttempt) {
			t.Errorf("second RecordAttemptOn() error = %v, want ErrDuplicateAttempt", err)
		}
		if err := tr.RecordAttempt(ctx, "u1", false); err != nil {
			t.Errorf("RecordAttempt() for the new day error: %v", err)
		}
	})
}
