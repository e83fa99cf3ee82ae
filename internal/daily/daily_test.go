package daily

import (
	"testing"
	"time"
)

func TestCalendarUsesLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	cal := NewCalendar(loc, nil)

	lateUTC := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)  // 00:30 on the 11th locally
	earlyUTC := time.Date(2024, 3, 10, 21, 59, 0, 0, time.UTC) // 23:59 on the 10th locally

	if got := cal.Key(lateUTC); got != "2024-03-11" {
		t.Errorf("Key(late) = %q, want 2024-03-11", got)
	}
	if got := cal.Key(earlyUTC); got != "2024-03-10" {
		t.Errorf("Key(early) = %q, want 2024-03-10", got)
	}
	if cal.SameDay(lateUTC, earlyUTC) {
		t.Error("instants 31 minutes apart across local midnight must be different days")
	}
	morning := time.Date(2024, 3, 10, 0, 5, 0, 0, loc)
	night := time.Date(2024, 3, 10, 23, 55, 0, 0, loc)
	if !cal.SameDay(morning, night) {
		t.Error("same local date must be the same day")
	}
}

func TestCalendarToday(t *testing.T) {
	cal := fixedCalendar(day1)
	if got := cal.Today(); got != "2024-03-10" {
		t.Errorf("Today() = %q, want 2024-03-10", got)
	}
}
