// internal/game/compare.go
//
// Attribute comparison between a target and a guessed language.
// Responsibilities:
//   - Set attributes (paradigm): exact when the lists are identical in order,
//     close when they share a tag, wrong otherwise.
//   - Year attribute (firstAppeared): exact, close within a few years, wrong,
//     plus the direction the target lies in.
//   - Scalar attributes: exact or wrong.
//
// All functions are pure.

package game

import (
	"slices"

	"github.com/robalobadob/langle/internal/catalog"
)

// yearTolerance is the widest gap in years still scored as close.
const yearTolerance = 5

// Compare scores a single attribute of guess against target.
// Only AttrFirstAppeared ever yields a direction.
func Compare(attr Attribute, target, guess catalog.Language) (Match, Direction) {
	switch attr {
	case AttrParadigm:
		return CompareSet(target.Paradigm, guess.Paradigm), DirectionNone
	case AttrFirstAppeared:
		return CompareYear(target.FirstAppeared, guess.FirstAppeared)
	case AttrTyping:
		return CompareScalar(target.Typing, guess.Typing), DirectionNone
	case AttrGarbageCollection:
		return CompareScalar(target.GarbageCollection, guess.GarbageCollection), DirectionNone
	case AttrDesignedBy:
		return CompareScalar(target.DesignedBy, guess.DesignedBy), DirectionNone
	case AttrMainUseCase:
		return CompareScalar(target.MainUseCase, guess.MainUseCase), DirectionNone
	}
	return MatchWrong, DirectionNone
}

// CompareSet scores tag lists. Exact requires the same tags in the same
// listed order, so a reordered but otherwise equal list is only close.
func CompareSet(target, guess []string) Match {
	if slices.Equal(target, guess) {
		return MatchExact
	}
	for _, v := range target {
		if slices.Contains(guess, v) {
			return MatchClose
		}
	}
	return MatchWrong
}

// CompareYear scores an ordered year. Direction points from guess toward target.
func CompareYear(target, guess int) (Match, Direction) {
	if target == guess {
		return MatchExact, DirectionNone
	}
	dir := DirectionDown
	if guess < target {
		dir = DirectionUp
	}
	diff := target - guess
	if diff < 0 {
		diff = -diff
	}
	if diff <= yearTolerance {
		return MatchClose, dir
	}
	return MatchWrong, dir
}

// CompareScalar scores values that are either equal or not.
func CompareScalar[T comparable](target, guess T) Match {
	if target == guess {
		return MatchExact
	}
	return MatchWrong
}

// valueOf returns the revealed value of attr for l.
func valueOf(attr Attribute, l catalog.Language) any {
	switch attr {
	case AttrParadigm:
		return slices.Clone(l.Paradigm)
	case AttrTyping:
		return string(l.Typing)
	case AttrGarbageCollection:
		return l.GarbageCollection
	case AttrDesignedBy:
		return l.DesignedBy
	case AttrFirstAppeared:
		return l.FirstAppeared
	case AttrMainUseCase:
		return l.MainUseCase
	}
	return nil
}

// zeroValue is the withheld value shown before an attribute is revealed.
func zeroValue(attr Attribute) any {
	switch attr {
	case AttrParadigm:
		return []string{}
	case AttrGarbageCollection:
		return false
	case AttrFirstAppeared:
		return 0
	}
	return ""
}
