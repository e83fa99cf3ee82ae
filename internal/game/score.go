// internal/game/score.go
//
// Guess scoring.
// Responsibilities:
//   - Resolve a guessed name against the catalog (case-insensitive).
//   - Compare every attribute in declaration order, revealing the target's values.
//   - Render one feedback line per attribute ("typing: ✓", "first_appeared: ≈ ↑").
//
// A guess naming the target short-circuits to an all-exact score.

package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/robalobadob/langle/internal/catalog"
)

// Score is the outcome of comparing one guessed language with the target.
type Score struct {
	// Exact is set when the guess named the target itself.
	Exact   bool
	Results map[Attribute]AttributeResult
	// Lines holds one feedback line per attribute, or a single
	// success line when Exact is set.
	Lines []Line
}

// Scorer scores free-text guesses against a target using a catalog.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer returns a Scorer backed by c.
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// Score resolves guess in the catalog and evaluates it against target.
// Returns ErrNotFound when the name is unknown; nothing is scored then.
func (s *Scorer) Score(target catalog.Language, guess string) (Score, error) {
	guess = strings.TrimSpace(guess)
	if strings.EqualFold(guess, target.Name) {
		return exactScore(target), nil
	}
	guessed, ok := s.catalog.Lookup(guess)
	if !ok {
		return Score{}, fmt.Errorf("%q: %w", guess, ErrNotFound)
	}
	return Evaluate(target, guessed), nil
}

// Evaluate compares every attribute of guessed with target in declaration order.
// Revealed values are always the target's.
func Evaluate(target, guessed catalog.Language) Score {
	if strings.EqualFold(target.Name, guessed.Name) {
		return exactScore(target)
	}
	sc := Score{
		Results: make(map[Attribute]AttributeResult, len(Attributes)),
		Lines:   make([]Line, 0, len(Attributes)),
	}
	for _, attr := range Attributes {
		m, dir := Compare(attr, target, guessed)
		sc.Results[attr] = AttributeResult{Value: valueOf(attr, target), Match: m, Direction: dir}
		sc.Lines = append(sc.Lines, Line{Text: feedback(attr, m, dir), Kind: kindOf(m)})
	}
	return sc
}

/**
 * exactScore is the score of a guess that names the target.
 *
 * Every attribute is exact and revealed; the log gets a single
 * success line instead of one line per attribute.
 */
func exactScore(target catalog.Language) Score {
	sc := Score{
		Exact:   true,
		Results: make(map[Attribute]AttributeResult, len(Attributes)),
		Lines: []Line{{
			Text: fmt.Sprintf("Match found! Language identified: %s", target.Name),
			Kind: KindSuccess,
		}},
	}
	for _, attr := range Attributes {
		sc.Results[attr] = AttributeResult{Value: valueOf(attr, target), Match: MatchExact}
	}
	return sc
}

// feedback renders "<snake_case>: <symbol>[ arrow]".
func feedback(attr Attribute, m Match, dir Direction) string {
	sym := "✗"
	switch m {
	case MatchExact:
		sym = "✓"
	case MatchClose:
		sym = "≈"
	}
	switch dir {
	case DirectionUp:
		sym += " ↑"
	case DirectionDown:
		sym += " ↓"
	}
	return snakeCase(string(attr)) + ": " + sym
}

// kindOf picks the log colour of a feedback line.
func kindOf(m Match) LineKind {
	switch m {
	case MatchExact:
		return KindSuccess
	case MatchClose:
		return KindWarning
	case MatchWrong:
		return KindError
	}
	return KindInfo
}

func snakeCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
