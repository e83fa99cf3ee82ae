package game

import (
	"testing"

	"github.com/robalobadob/langle/internal/catalog"
)

func TestCompareSameValueIsExact(t *testing.T) {
	l := catalog.Language{
		Name:              "Go",
		Paradigm:          []string{"Concurrent", "Imperative"},
		Typing:            catalog.TypingStatic,
		GarbageCollection: true,
		DesignedBy:        "Rob Pike",
		FirstAppeared:     2009,
		MainUseCase:       "Systems",
	}
	for _, attr := range Attributes {
		m, dir := Compare(attr, l, l)
		if m != MatchExact || dir != DirectionNone {
			t.Errorf("Compare(%s, x, x) = (%s, %q), want (exact, none)", attr, m, dir)
		}
	}
	if m := CompareSet(nil, nil); m != MatchExact {
		t.Errorf("CompareSet(empty, empty) = %s, want exact", m)
	}
}

func TestCompareYear(t *testing.T) {
	tests := []struct {
		name          string
		target, guess int
		match         Match
		dir           Direction
	}{
		{"equal", 2010, 2010, MatchExact, DirectionNone},
		{"one earlier", 2010, 2009, MatchClose, DirectionUp},
		{"five earlier", 2010, 2005, MatchClose, DirectionUp},
		{"six earlier", 2010, 2004, MatchWrong, DirectionUp},
		{"five later", 2010, 2015, MatchClose, DirectionDown},
		{"six later", 2010, 2016, MatchWrong, DirectionDown},
		{"far earlier", 2010, 1995, MatchWrong, DirectionUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, dir := CompareYear(tt.target, tt.guess)
			if m != tt.match || dir != tt.dir {
				t.Errorf("CompareYear(%d, %d) = (%s, %q), want (%s, %q)", tt.target, tt.guess, m, dir, tt.match, tt.dir)
			}
		})
	}
}

func TestCompareYearDirectionProperty(t *testing.T) {
	for target := 1950; target <= 2020; target += 7 {
		for guess := target - 12; guess <= target+12; guess++ {
			_, dir := CompareYear(target, guess)
			switch {
			case guess < target && dir != DirectionUp:
				t.Fatalf("CompareYear(%d, %d) direction = %q, want up", target, guess, dir)
			case guess > target && dir != DirectionDown:
				t.Fatalf("CompareYear(%d, %d) direction = %q, want down", target, guess, dir)
			case guess == target && dir != DirectionNone:
				t.Fatalf("CompareYear(%d, %d) direction = %q, want none", target, guess, dir)
			}
		}
	}
}

func TestCompareSet(t *testing.T) {
	tests := []struct {
		name          string
		target, guess []string
		want          Match
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, MatchExact},
		{"reordered is only close", []string{"a", "b"}, []string{"b", "a"}, MatchClose},
		{"subset", []string{"a", "b"}, []string{"a"}, MatchClose},
		{"superset", []string{"a"}, []string{"a", "c"}, MatchClose},
		{"disjoint", []string{"a", "b"}, []string{"c", "d"}, MatchWrong},
		{"empty guess", []string{"a"}, nil, MatchWrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareSet(tt.target, tt.guess); got != tt.want {
				t.Errorf("CompareSet(%v, %v) = %s, want %s", tt.target, tt.guess, got, tt.want)
			}
		})
	}
}

func TestCompareScalar(t *testing.T) {
	if got := CompareScalar(catalog.TypingStatic, catalog.TypingDynamic); got != MatchWrong {
		t.Errorf("typing mismatch = %s, want wrong", got)
	}
	if got := CompareScalar(true, false); got != MatchWrong {
		t.Errorf("bool mismatch = %s, want wrong", got)
	}
	if got := CompareScalar("Systems", "systems"); got != MatchWrong {
		t.Errorf("scalar comparison must be strict, got %s", got)
	}
	if got := CompareScalar("Web", "Web"); got != MatchExact {
		t.Errorf("equal strings = %s, want exact", got)
	}
}
