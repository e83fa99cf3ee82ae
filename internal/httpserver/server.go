// internal/httpserver/server.go
//
// HTTP server wiring for the langle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Auth endpoints: /auth/* (see auth.go).
//   - Game endpoints (optional auth): /game/* (see routes_game.go).
//   - Daily endpoints: /api/daily/pick-lang, /daily/try, /stats/me (see routes_daily.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the user when a valid token is present;
//     guests can open a session but cannot submit guesses.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/langle/internal/catalog"
	"github.com/robalobadob/langle/internal/config"
	"github.com/robalobadob/langle/internal/daily"
	"github.com/robalobadob/langle/internal/game"
	"github.com/robalobadob/langle/internal/store"
	"github.com/robalobadob/langle/internal/users"
)

// Deps are the collaborators the handlers drive.
type Deps struct {
	Calendar daily.Calendar
	Catalog  *catalog.Catalog
	Picker   *daily.Picker
	Tracker  *daily.Tracker
	Sessions store.Store
	Users    users.Store
}

// Server bundles router, configuration and domain services.
type Server struct {
	r        *chi.Mux
	conf     *config.Config
	cal      daily.Calendar
	catalog  *catalog.Catalog
	scorer   *game.Scorer
	picker   *daily.Picker
	tracker  *daily.Tracker
	sessions store.Store
	users    users.Store
	limiter  *clientLimiter
	validate *validator.Validate
}

// New constructs a Server, installs middleware, and registers routes.
func New(conf *config.Config, deps Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		conf:     conf,
		cal:      deps.Calendar,
		catalog:  deps.Catalog,
		scorer:   game.NewScorer(deps.Catalog),
		picker:   deps.Picker,
		tracker:  deps.Tracker,
		sessions: deps.Sessions,
		users:    deps.Users,
		limiter:  newClientLimiter(conf.Game.GuessRate, conf.Game.GuessBurst),
		validate: newValidator(),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(conf.HTTP.HandlerTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(conf.HTTP.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"langle","endpoints":["/health","GET /api/daily/pick-lang","POST /game/new","POST /game/guess","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountAuthRoutes()
	s.mountGame()
	s.mountDaily()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.conf.HTTP.Addr,
		Handler:      s.r,
		ReadTimeout:  s.conf.HTTP.ReadTimeout,
		WriteTimeout: s.conf.HTTP.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
