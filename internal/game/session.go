// internal/game/session.go
//
// Game session state machine for one browser session.
// Responsibilities:
//   - Track attempts, attribute reveals and the feedback log.
//   - Apply guesses: playing → won/lost.
//   - Record the outcome with the daily tracker exactly once on the
//     transition into a terminal state.
//
// Notes:
//   - A session is driven sequentially; the mutex serializes overlapping
//     requests and is held across the recording side effect.
//   - An unknown language still costs a try.
//   - A session belongs to the day its target was picked for. The outcome is
//     recorded against that day and play stops once the day is over.

package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/langle/internal/catalog"
	"github.com/robalobadob/langle/internal/daily"
)

// DefaultMaxTries is the number of guesses a player gets per day.
const DefaultMaxTries = 10

// ErrNotRecorded wraps a failure to persist a finished session's outcome.
var ErrNotRecorded = errors.New("outcome not recorded")

// Recorder persists the outcome of a finished session for the day it was
// played. An empty day means the recorder's today.
type Recorder interface {
	RecordAttemptOn(ctx context.Context, userID, day string, success bool) error
}

// Player identifies who drives a session. The zero value is an unauthenticated visitor.
type Player struct {
	ID          string
	DisplayName string
}

// Prior describes a try the player already has on record for today.
type Prior struct {
	Success bool
}

// Options configure a new Session.
type Options struct {
	ID       string
	Player   Player
	Target   catalog.Language
	MaxTries int
	Scorer   *Scorer
	Recorder Recorder
	// Prior is set when the player already played today; the session starts locked.
	Prior *Prior
	// Day is the key of the day Target was picked for.
	Day string
	// Today reports the current day key. With Day set, the session expires
	// once the two differ. Nil disables expiry.
	Today func() string
}

// Session holds the in-memory state of one game.
type Session struct {
	mu sync.Mutex

	id        string
	player    Player
	target    catalog.Language
	maxTries  int
	scorer    *Scorer
	recorder  Recorder
	prior     *Prior
	day       string
	today     func() string
	createdAt time.Time

	locked   bool
	recorded bool
	attempts int
	state    State
	attrs    map[Attribute]AttributeResult
	log      []Line
}

// Turn describes the effect of a single Submit call.
type Turn struct {
	Lines    []Line
	NotFound bool
	State    State
	Attempts int
}

// NewSession starts a session in the playing state.
func NewSession(opts Options) *Session {
	if opts.MaxTries <= 0 {
		opts.MaxTries = DefaultMaxTries
	}
	s := &Session{
		id:        opts.ID,
		player:    opts.Player,
		target:    opts.Target,
		maxTries:  opts.MaxTries,
		scorer:    opts.Scorer,
		recorder:  opts.Recorder,
		prior:     opts.Prior,
		day:       opts.Day,
		today:     opts.Today,
		createdAt: time.Now(),
		locked:    opts.Prior != nil,
	}
	s.init()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the owning user, empty for visitors.
func (s *Session) UserID() string { return s.player.ID }

// CreatedAt reports when the session was started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Submit applies a guess. Whitespace-only input is ignored.
//
// State transitions:
//   - Guess names the target → WON.
//   - Otherwise, attempts reaching the maximum → LOST.
//
// A failure to record the outcome is returned wrapped in ErrNotRecorded
// together with the Turn; the state change itself stands.
func (s *Session) Submit(ctx context.Context, text string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guess := strings.TrimSpace(text)
	if guess == "" {
		return Turn{State: s.state, Attempts: s.attempts}, nil
	}
	switch {
	case s.player.ID == "":
		return Turn{}, ErrUnauthenticated
	case s.state.Terminal():
		return Turn{}, ErrFinished
	case s.locked:
		return Turn{}, ErrLocked
	case s.expired():
		return Turn{}, ErrExpired
	}

	start := len(s.log)
	s.attempts++
	s.append(
		Line{Text: "", Kind: KindCommand},
		Line{Text: fmt.Sprintf(`$ execute --lang="%s"`, guess), Kind: KindCommand},
	)

	turn := Turn{}
	sc, err := s.scorer.Score(s.target, guess)
	switch {
	case err != nil:
		turn.NotFound = true
		s.append(Line{Text: fmt.Sprintf(`ERROR: Language "%s" not found in database.`, guess), Kind: KindError})
	case sc.Exact:
		s.reveal(sc.Results)
		s.append(sc.Lines...)
		s.append(Line{Text: "SUCCESS: All properties verified ✓", Kind: KindSuccess})
		s.state = StateWon
	default:
		s.reveal(sc.Results)
		s.append(Line{Text: fmt.Sprintf(`Comparing properties of "%s" with target language:`, guess), Kind: KindInfo})
		s.append(sc.Lines...)
	}

	if s.state == StatePlaying {
		switch {
		case s.attempts >= s.maxTries:
			s.state = StateLost
			s.append(Line{Text: "This was your last attempt. You lost todays game. Please try again tomorrow.", Kind: KindError})
		case turn.NotFound:
			s.append(Line{Text: "Try another language identifier.", Kind: KindWarning})
		default:
			s.append(Line{Text: "Analysis complete. Try another language.", Kind: KindInfo})
		}
	}

	recErr := s.finish(ctx)

	turn.Lines = slices.Clone(s.log[start:])
	turn.State = s.state
	turn.Attempts = s.attempts
	return turn, recErr
}

// finish records the outcome once, on the first observation of a terminal state.
func (s *Session) finish(ctx context.Context) error {
	if !s.state.Terminal() || s.recorded {
		return nil
	}
	s.recorded = true
	if s.recorder == nil {
		return nil
	}
	won := s.state == StateWon
	err := s.recorder.RecordAttemptOn(ctx, s.player.ID, s.day, won)
	switch {
	case err == nil:
		log.Info().Str("user", s.player.ID).Bool("success", won).Int("attempts", s.attempts).Msg("daily try recorded")
	case errors.Is(err, daily.ErrDuplicateAttempt):
		log.Info().Str("user", s.player.ID).Msg("daily try already recorded by another session")
	default:
		return fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}
	s.locked = true
	return nil
}

// Reset starts the game over. Only an unlocked game still in play can be
// reset; a finished game keeps its outcome even if recording it failed.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.player.ID == "":
		return ErrUnauthenticated
	case s.locked:
		return ErrLocked
	case s.state.Terminal(), s.recorded:
		return ErrFinished
	case s.expired():
		return ErrExpired
	}
	s.init()
	return nil
}

// expired reports whether the day the session was started for is over.
func (s *Session) expired() bool {
	return s.day != "" && s.today != nil && s.today() != s.day
}

// Day returns the day key the session plays for.
func (s *Session) Day() string { return s.day }

// init resets play state and writes the intro lines.
func (s *Session) init() {
	s.attempts = 0
	s.state = StatePlaying
	s.recorded = false
	s.attrs = make(map[Attribute]AttributeResult, len(Attributes))
	for _, attr := range Attributes {
		s.attrs[attr] = AttributeResult{Value: zeroValue(attr), Match: MatchHidden}
	}
	s.log = []Line{
		{Text: "$ ./language-guesser", Kind: KindCommand},
		{Text: "Checking your identity...", Kind: KindInfo},
	}
	if s.player.ID == "" {
		s.append(Line{Text: "Identity check failure. Please log in to continue.", Kind: KindError})
		return
	}
	s.append(Line{Text: fmt.Sprintf("Identity check success. Welcome, %s!", firstName(s.player.DisplayName)), Kind: KindSuccess})
	switch {
	case s.prior != nil && s.prior.Success:
		s.append(Line{Text: "You have already WON today! Congratulations! See you tomorrow.", Kind: KindInfo})
	case s.prior != nil:
		s.append(Line{Text: "You have already played today. Please try again tomorrow.", Kind: KindError})
	default:
		s.append(
			Line{Text: "Initializing language database...", Kind: KindInfo},
			Line{Text: "Loading game module...", Kind: KindInfo},
			Line{Text: "All systems ready. Type a language name and press Enter to execute.", Kind: KindSuccess},
		)
	}
}

func (s *Session) reveal(results map[Attribute]AttributeResult) {
	for attr, r := range results {
		s.attrs[attr] = r
	}
}

func (s *Session) append(lines ...Line) {
	s.log = append(s.log, lines...)
}

func firstName(display string) string {
	if f := strings.Fields(display); len(f) > 0 {
		return f[0]
	}
	return "User"
}

// NamedResult is an AttributeResult tagged with its attribute.
type NamedResult struct {
	Name Attribute `json:"name"`
	AttributeResult
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID         string        `json:"sessionId"`
	State      State         `json:"state"`
	Attempts   int           `json:"attempts"`
	MaxTries   int           `json:"maxTries"`
	Locked     bool          `json:"locked"`
	Day        string        `json:"day,omitempty"`
	Attributes []NamedResult `json:"attributes"`
	Log        []Line        `json:"log"`
	// Language is the target, only filled in once the game is over.
	Language string `json:"language,omitempty"`
}

// Snapshot copies the current state. Attributes follow declaration order.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		State:      s.state,
		Attempts:   s.attempts,
		MaxTries:   s.maxTries,
		Locked:     s.locked,
		Day:        s.day,
		Attributes: make([]NamedResult, 0, len(Attributes)),
		Log:        slices.Clone(s.log),
	}
	for _, attr := range Attributes {
		snap.Attributes = append(snap.Attributes, NamedResult{Name: attr, AttributeResult: s.attrs[attr]})
	}
	if s.state.Terminal() {
		snap.Language = s.target.Name
	}
	return snap
}
