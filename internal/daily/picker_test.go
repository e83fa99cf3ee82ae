package daily

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestEnsureCreatesOnce(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		p := NewPicker(s, testCatalog(t), fixedCalendar(day1), PickerOptions{})

		if _, err := p.Today(ctx); !errors.Is(err, ErrNoPick) {
			t.Fatalf("Today() before pick error = %v, want ErrNoPick", err)
		}

		name, already, err := p.Ensure(ctx)
		if err != nil {
			t.Fatalf("Ensure() error: %v", err)
		}
		if already {
			t.Error("first Ensure() reported alreadyPicked")
		}

		again, already, err := p.Ensure(ctx)
		if err != nil {
			t.Fatalf("second Ensure() error: %v", err)
		}
		if !already || again != name {
			t.Errorf("second Ensure() = (%q, %v), want (%q, true)", again, already, name)
		}

		today, err := p.Today(ctx)
		if err != nil || today != name {
			t.Errorf("Today() = (%q, %v), want %q", today, err, name)
		}
	})
}

func TestEnsureConcurrentCallers(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		cat := testCatalog(t)
		// separate pickers share nothing but the store, like separate processes
		pickers := []*Picker{
			NewPicker(s, cat, fixedCalendar(day1), PickerOptions{}),
			NewPicker(s, cat, fixedCalendar(day1), PickerOptions{}),
			NewPicker(s, cat, fixedCalendar(day1), PickerOptions{}),
		}

		const n = 24
		names := make(chan string, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(p *Picker) {
				defer wg.Done()
				name, _, err := p.Ensure(ctx)
				if err != nil {
					t.Errorf("Ensure() error: %v", err)
				}
				names <- name
			}(pickers[i%len(pickers)])
		}
		wg.Wait()
		close(names)

		var first string
		for name := range names {
			if first == "" {
				first = name
			}
			if name != first {
				t.Fatalf("callers observed different picks: %q and %q", first, name)
			}
		}

		picks, err := s.ListPicks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(picks) != 1 {
			t.Fatalf("persisted picks = %d, want 1", len(picks))
		}
		if picks[0].LanguageName != first {
			t.Errorf("persisted %q, callers saw %q", picks[0].LanguageName, first)
		}
	})
}

func TestEnsureNewDayNewPick(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	cat := testCatalog(t)
	if _, _, err := NewPicker(s, cat, fixedCalendar(day1), PickerOptions{}).Ensure(ctx); err != nil {
		t.Fatal(err)
	}
	_, already, err := NewPicker(s, cat, fixedCalendar(day1.AddDate(0, 0, 1)), PickerOptions{}).Ensure(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if already {
		t.Error("a new calendar day must get a new pick")
	}
	picks, _ := s.ListPicks(ctx)
	if len(picks) != 2 {
		t.Errorf("picks = %d, want 2", len(picks))
	}
}

func TestEnsureRetriesTransientFailures(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: NewMemoryStore(), failInserts: 2}
	p := NewPicker(fs, testCatalog(t), fixedCalendar(day1), PickerOptions{MaxAttempts: 5, Backoff: time.Millisecond})

	name, already, err := p.Ensure(ctx)
	if err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}
	if already || name == "" {
		t.Errorf("Ensure() = (%q, %v), want fresh pick", name, already)
	}
	if got := fs.inserts.Load(); got != 3 {
		t.Errorf("insert calls = %d, want 3", got)
	}
}

func TestEnsureGivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: NewMemoryStore(), failInserts: 1000}
	p := NewPicker(fs, testCatalog(t), fixedCalendar(day1), PickerOptions{MaxAttempts: 3, Backoff: time.Millisecond})

	_, _, err := p.Ensure(ctx)
	if !errors.Is(err, ErrPickUnavailable) {
		t.Fatalf("Ensure() error = %v, want ErrPickUnavailable", err)
	}
	if !errors.Is(err, errUnavailable) {
		t.Errorf("Ensure() error = %v, want it to wrap the store error", err)
	}
	if got := fs.inserts.Load(); got != 3 {
		t.Errorf("insert calls = %d, want 3", got)
	}
	picks, _ := fs.Store.ListPicks(ctx)
	if len(picks) != 0 {
		t.Errorf("picks = %d, want none persisted", len(picks))
	}
}

func TestEnsureReadFailurePropagates(t *testing.T) {
	fs := &flakyStore{Store: NewMemoryStore(), failReads: true}
	p := NewPicker(fs, testCatalog(t), fixedCalendar(day1), PickerOptions{})
	if _, _, err := p.Ensure(context.Background()); !errors.Is(err, errUnavailable) {
		t.Fatalf("Ensure() error = %v, want read failure", err)
	}
	if got := fs.inserts.Load(); got != 0 {
		t.Errorf("insert calls = %d, want 0 without a successful read", got)
	}
}

func TestEnsureLosingRaceReturnsWinner(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		rs := &racingStore{Store: s, winner: "Go"}
		p := NewPicker(rs, testCatalog(t), fixedCalendar(day1), PickerOptions{})

		name, already, err := p.Ensure(ctx)
		if err != nil {
			t.Fatalf("Ensure() error: %v", err)
		}
		if name != "Go" || !already {
			t.Errorf("Ensure() = (%q, %v), want (Go, true)", name, already)
		}
		picks, _ := s.ListPicks(ctx)
		if len(picks) != 1 {
			t.Errorf("picks = %d, want 1", len(picks))
		}
	})
}

func TestTodaysLanguage(t *testing.T) {
	p := NewPicker(NewMemoryStore(), testCatalog(t), fixedCalendar(day1), PickerOptions{})
	lang, err := p.TodaysLanguage(context.Background())
	if err != nil {
		t.Fatalf("TodaysLanguage() error: %v", err)
	}
	name, _ := p.Today(context.Background())
	if lang.Name != name {
		t.Errorf("TodaysLanguage() = %q, Today() = %q", lang.Name, name)
	}
}

func TestTodaysTargetCarriesDay(t *testing.T) {
	p := NewPicker(NewMemoryStore(), testCatalog(t), fixedCalendar(day1), PickerOptions{})
	lang, day, err := p.TodaysTarget(context.Background())
	if err != nil {
		t.Fatalf("TodaysTarget() error: %v", err)
	}
	if day != "2024-03-10" {
		t.Errorf("day = %q, want 2024-03-10", day)
	}
	if name, _ := p.Today(context.Background()); lang.Name != name {
		t.Errorf("TodaysTarget() = %q, Today() = %q", lang.Name, name)
	}
}
