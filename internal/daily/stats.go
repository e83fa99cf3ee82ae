// internal/daily/stats.go
//
// Player statistics derived from the daily tries table.
// Responsibilities:
//   - Count played days and wins.
//   - Compute the current and the longest run of wins on consecutive days.

package daily

import (
	"sort"
	"time"
)

// Stats is a player's history over all recorded days.
type Stats struct {
	Played    int `json:"played"`
	Wins      int `json:"wins"`
	Streak    int `json:"streak"`
	MaxStreak int `json:"maxStreak"`
}

// Summarize computes Stats from tries. A streak is a run of wins on
// consecutive calendar days; the current streak survives until the end
// of the day after the last win.
func Summarize(tries []Try, today string) Stats {
	sorted := make([]Try, len(tries))
	copy(sorted, tries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	var (
		st      Stats
		run     int
		prevDay string
	)
	for _, t := range sorted {
		st.Played++
		if !t.Success {
			run = 0
			prevDay = t.Day
			continue
		}
		st.Wins++
		if prevDay != "" && nextDay(prevDay) == t.Day && run > 0 {
			run++
		} else {
			run = 1
		}
		if run > st.MaxStreak {
			st.MaxStreak = run
		}
		prevDay = t.Day
	}
	if prevDay == today || nextDay(prevDay) == today {
		st.Streak = run
	}
	return st
}

// nextDay returns the key of the day after day, or "" if day is malformed.
func nextDay(day string) string {
	d, err := time.Parse(dayLayout, day)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, 1).Format(dayLayout)
}
