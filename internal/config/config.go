// internal/config/config.go
//
// Process configuration, read from LANGLE_* environment variables.
// Responsibilities:
//   - Typed, nested settings with defaults (envconfig tags).
//   - Post-processing validation with a single aggregated error.
//
// A .env file is loaded by main before Load is called.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	devSecret = "dev_secret_change_me"
)

type (
	HTTP struct {
		Addr         string        `default:":5175"`
		ReadTimeout  time.Duration `split_words:"true" default:"10s"`
		WriteTimeout time.Duration `split_words:"true" default:"15s"`
		// Handler bounds each request through chi's Timeout middleware.
		HandlerTimeout time.Duration `split_words:"true" default:"10s"`
		ClientOrigin   string        `split_words:"true" default:"http://localhost:5173"`
	}

	DB struct {
		Driver string `default:"sqlite"`
		Path   string `default:"data/langle.db"`
	}

	Auth struct {
		JWTSecret  string        `envconfig:"JWT_SECRET" default:""`
		TokenTTL   time.Duration `split_words:"true" default:"336h"`
		CookieName string        `split_words:"true" default:"langle_token"`
	}

	Game struct {
		MaxTries   int           `split_words:"true" default:"10"`
		SessionTTL time.Duration `split_words:"true" default:"24h"`
		// GuessRate is the sustained guesses per second allowed per client.
		GuessRate  float64 `split_words:"true" default:"2"`
		GuessBurst int     `split_words:"true" default:"5"`
	}

	Daily struct {
		Location     string        `default:"UTC"`
		PickAttempts int           `split_words:"true" default:"5"`
		PickBackoff  time.Duration `split_words:"true" default:"50ms"`
	}

	Config struct {
		Env         string `default:"dev"`
		LogLevel    string `split_words:"true" default:"info"`
		CatalogFile string `split_words:"true" default:""`
		HTTP        HTTP
		DB          DB
		Auth        Auth
		Game        Game
		Daily       Daily
	}
)

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	res := &Config{}
	if err := envconfig.Process("LANGLE", res); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if res.Env == EnvDev && res.Auth.JWTSecret == "" {
		res.Auth.JWTSecret = devSecret
	}
	return validate(res)
}

// Dev reports whether the process runs in development mode.
func (c *Config) Dev() bool { return c.Env == EnvDev }

// TimeLocation resolves the daily timezone.
func (d Daily) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(d.Location)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

func validate(conf *Config) (*Config, error) {
	errs := make([]string, 0, 8)
	if conf.Env != EnvDev && conf.Env != EnvProd {
		errs = append(errs, fmt.Sprintf("env %q must be %q or %q", conf.Env, EnvDev, EnvProd))
	}
	if conf.DB.Driver != DriverSQLite && conf.DB.Driver != DriverMemory {
		errs = append(errs, fmt.Sprintf("db driver %q must be %q or %q", conf.DB.Driver, DriverSQLite, DriverMemory))
	}
	if conf.DB.Driver == DriverSQLite && conf.DB.Path == "" {
		errs = append(errs, "db path is required")
	}
	if conf.Auth.JWTSecret == "" {
		errs = append(errs, "jwt secret is required outside dev")
	}
	if conf.Auth.TokenTTL <= 0 {
		errs = append(errs, "token ttl must be positive")
	}
	if conf.Game.MaxTries < 1 {
		errs = append(errs, fmt.Sprintf("max tries %d must be at least 1", conf.Game.MaxTries))
	}
	if conf.Game.GuessRate <= 0 || conf.Game.GuessBurst < 1 {
		errs = append(errs, "guess rate and burst must be positive")
	}
	if conf.Daily.PickAttempts < 1 {
		errs = append(errs, fmt.Sprintf("pick attempts %d must be at least 1", conf.Daily.PickAttempts))
	}
	if _, err := conf.Daily.TimeLocation(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone: %s", err))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, ", "))
	}
	return conf, nil
}
