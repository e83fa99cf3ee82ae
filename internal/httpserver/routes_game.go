// internal/httpserver/routes_game.go
//
// Game session endpoints (optional auth):
//   - POST /game/new    → start a session against today's language
//   - GET  /game/{id}   → current snapshot
//   - POST /game/guess  → submit a guess (rate limited)
//   - POST /game/reset  → start over, unless the game is over or today's try is on record
//
// Sessions live in the in-memory store; the outcome is persisted through
// the daily tracker when a session finishes, against the day the session
// was opened for. A session stops accepting guesses when that day ends.

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/langle/internal/game"
)

type guessReq struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Guess     string `json:"guess" validate:"max=64"`
}

type resetReq struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
}

type guessRes struct {
	game.Snapshot
	Lines    []game.Line `json:"lines"`
	NotFound bool        `json:"notFound"`
}

func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", s.handleNewGame)
		r.Get("/{id}", s.handleGetGame)
		r.With(s.rateLimited).Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})
}

// handleNewGame creates a session for today's pick, creating the pick if needed.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	target, day, err := s.picker.TodaysTarget(ctx)
	if err != nil {
		fail(w, r, err)
		return
	}

	opts := game.Options{
		ID:       uuid.NewString(),
		Target:   target,
		MaxTries: s.conf.Game.MaxTries,
		Scorer:   s.scorer,
		Recorder: s.tracker,
		Day:      day,
		Today:    s.cal.Today,
	}
	if me := currentUser(r); me != nil {
		opts.Player = game.Player{ID: me.ID, DisplayName: me.Username}
		prior, err := s.tracker.TryOn(ctx, me.ID, day)
		if err != nil {
			fail(w, r, err)
			return
		}
		if prior != nil {
			opts.Prior = &game.Prior{Success: prior.Success}
		}
	}

	sess := game.NewSession(opts)
	if err := s.sessions.Save(ctx, sess); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r.Context(), r, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := s.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := s.session(r.Context(), r, req.SessionID)
	if err != nil {
		fail(w, r, err)
		return
	}
	// the outcome must be recorded even if the client goes away mid-request
	turn, err := sess.Submit(context.WithoutCancel(r.Context()), req.Guess)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{
		Snapshot: sess.Snapshot(),
		Lines:    turn.Lines,
		NotFound: turn.NotFound,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := s.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := s.session(r.Context(), r, req.SessionID)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := sess.Reset(); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// session loads a session owned by the requester. Someone else's session
// is reported as missing.
func (s *Server) session(ctx context.Context, r *http.Request, id string) (*game.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := ""
	if me := currentUser(r); me != nil {
		owner = me.ID
	}
	if sess.UserID() != owner {
		return nil, game.ErrNotFound
	}
	return sess, nil
}
