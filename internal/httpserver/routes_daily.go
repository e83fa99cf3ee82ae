// internal/httpserver/routes_daily.go
//
// Daily endpoints:
//   - GET /api/daily/pick-lang → today's language, picking it on first call
//   - GET /daily/try           → whether the signed-in user played today (auth)
//   - GET /stats/me            → the signed-in user's daily record (auth)
//
// One language per calendar day and one try per user per day are enforced
// by the daily store's unique indexes.

package httpserver

import (
	"net/http"
)

type pickRes struct {
	AlreadyPicked bool   `json:"alreadyPicked"`
	Language      string `json:"language"`
}

type tryRes struct {
	Played  bool `json:"played"`
	Success bool `json:"success"`
}

func (s *Server) mountDaily() {
	s.r.Get("/api/daily/pick-lang", s.handlePickLang)
	s.r.With(s.requireAuth()).Get("/daily/try", s.handleDailyTry)
	s.r.With(s.requireAuth()).Get("/stats/me", s.handleStats)
}

func (s *Server) handlePickLang(w http.ResponseWriter, r *http.Request) {
	name, already, err := s.picker.Ensure(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pickRes{AlreadyPicked: already, Language: name})
}

func (s *Server) handleDailyTry(w http.ResponseWriter, r *http.Request) {
	try, err := s.tracker.TodaysTry(r.Context(), currentUser(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	res := tryRes{}
	if try != nil {
		res = tryRes{Played: true, Success: try.Success}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Stats(r.Context(), currentUser(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
