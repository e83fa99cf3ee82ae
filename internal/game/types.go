// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Match / Direction: per-attribute result of a guess.
//   - Attribute: the scored fields of a language, in fixed order.
//   - AttributeResult: the revealed state of one attribute.
//   - State: playing → won/lost.
//   - Line: one entry of the session feedback log.

package game

import "errors"

// Match classifies how close a guessed attribute is to the target.
type Match string

const (
	MatchExact  Match = "exact"
	MatchClose  Match = "close"
	MatchWrong  Match = "wrong"
	MatchHidden Match = "hidden"
)

// Direction hints which way an ordered attribute should move.
// The zero value means no hint.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Attribute names a scored language field.
type Attribute string

const (
	AttrParadigm          Attribute = "paradigm"
	AttrTyping            Attribute = "typing"
	AttrGarbageCollection Attribute = "garbageCollection"
	AttrDesignedBy        Attribute = "designedBy"
	AttrFirstAppeared     Attribute = "firstAppeared"
	AttrMainUseCase       Attribute = "mainUseCase"
)

// Attributes lists every scored attribute in declaration order.
// Scoring and feedback always follow this order.
var Attributes = [...]Attribute{
	AttrParadigm,
	AttrTyping,
	AttrGarbageCollection,
	AttrDesignedBy,
	AttrFirstAppeared,
	AttrMainUseCase,
}

// AttributeResult is the revealed state of one attribute.
// Value always holds the target's value once revealed.
type AttributeResult struct {
	Value     any       `json:"value"`
	Match     Match     `json:"match"`
	Direction Direction `json:"direction,omitempty"`
}

// State is the coarse state of a session.
type State string

const (
	StatePlaying State = "PLAYING"
	StateWon     State = "WON"
	StateLost    State = "LOST"
)

// Terminal reports whether no more guesses are accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// LineKind tags a feedback line for presentation.
type LineKind string

const (
	KindCommand LineKind = "command"
	KindError   LineKind = "error"
	KindSuccess LineKind = "success"
	KindInfo    LineKind = "info"
	KindWarning LineKind = "warning"
)

// Line is one immutable entry in a session's feedback log.
type Line struct {
	Text string   `json:"text"`
	Kind LineKind `json:"kind"`
}

var (
	// ErrNotFound means the guessed name is not in the catalog.
	ErrNotFound = errors.New("language not found")
	// ErrFinished means the session already reached WON or LOST.
	ErrFinished = errors.New("game finished")
	// ErrLocked means the user already has a recorded try for today.
	ErrLocked = errors.New("already played today")
	// ErrExpired means the day the session was started for is over.
	ErrExpired = errors.New("session expired")
	// ErrUnauthenticated means the session has no user and cannot be played.
	ErrUnauthenticated = errors.New("unauthenticated")
)
