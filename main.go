// main.go
//
// Process entrypoint for the langle server.
// Responsibilities:
//   - Load .env (best effort) and LANGLE_* configuration.
//   - Configure the global zerolog logger.
//   - Load the language catalog, open storage, wire the daily services.
//   - Serve HTTP until SIGINT/SIGTERM.

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/langle/assets"
	"github.com/robalobadob/langle/internal/catalog"
	"github.com/robalobadob/langle/internal/config"
	"github.com/robalobadob/langle/internal/daily"
	"github.com/robalobadob/langle/internal/db"
	"github.com/robalobadob/langle/internal/httpserver"
	"github.com/robalobadob/langle/internal/store"
	"github.com/robalobadob/langle/internal/users"
)

func main() {
	_ = godotenv.Load()

	conf, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(conf)

	cat, err := catalog.Load(conf.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load language catalog")
	}
	log.Info().Int("languages", cat.Len()).Msg("catalog loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		dailyStore daily.Store
		userStore  users.Store
	)
	switch conf.DB.Driver {
	case config.DriverMemory:
		dailyStore = daily.NewMemoryStore()
		userStore = users.NewMemoryStore()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	default:
		conn, err := db.OpenMigrated(ctx, conf.DB.Path, assets.Migrations())
		if err != nil {
			log.Fatal().Err(err).Str("path", conf.DB.Path).Msg("failed to open database")
		}
		defer closeDB(conn)
		dailyStore = daily.NewSQLStore(conn)
		userStore = users.NewSQLStore(conn)
	}

	loc, _ := conf.Daily.TimeLocation()
	cal := daily.NewCalendar(loc, nil)
	sessions := store.NewMemory(conf.Game.SessionTTL)
	go sessions.Run(ctx, time.Hour)

	srv := httpserver.New(conf, httpserver.Deps{
		Calendar: cal,
		Catalog:  cat,
		Picker: daily.NewPicker(dailyStore, cat, cal, daily.PickerOptions{
			MaxAttempts: conf.Daily.PickAttempts,
			Backoff:     conf.Daily.PickBackoff,
		}),
		Tracker:  daily.NewTracker(dailyStore, cal),
		Sessions: sessions,
		Users:    userStore,
	})

	log.Info().Str("env", conf.Env).Str("timezone", loc.String()).Int("maxTries", conf.Game.MaxTries).Msg("starting langle server")
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogger(conf *config.Config) {
	if lvl, err := zerolog.ParseLevel(conf.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if conf.Dev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}
