// internal/httpserver/errors.go
//
// Error responses.
// Domain errors are mapped to a status code and a stable error code and
// written as {"error": "<code>"}. Server-side failures are logged with the
// request path; client errors are not.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/langle/internal/daily"
	"github.com/robalobadob/langle/internal/game"
	"github.com/robalobadob/langle/internal/store"
)

// statusFor maps domain errors onto an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, game.ErrLocked), errors.Is(err, daily.ErrDuplicateAttempt):
		return http.StatusConflict, "already_played"
	case errors.Is(err, game.ErrFinished):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrExpired):
		return http.StatusGone, "session_expired"
	case errors.Is(err, daily.ErrPickUnavailable):
		return http.StatusServiceUnavailable, "pick_unavailable"
	case errors.Is(err, game.ErrNotRecorded):
		return http.StatusInternalServerError, "not_recorded"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes the mapped error response; server-side failures are logged.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, code)
}
