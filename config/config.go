// Package config loads server settings from the environment.
package config

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"

	"github.com/warp/hotel-engine/generic"
)

// -----------------------------------------------------------------------------
// Every variable is prefixed with HOTEL_ and has a default, so the server
// starts with no environment at all.
// -----------------------------------------------------------------------------

type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	BookingStore    string        `envconfig:"BOOKING_STORE" default:"memory"`
	SQLiteDSN       string        `envconfig:"SQLITE_DSN" default:":memory:"`
	OverlapPolicy   string        `envconfig:"OVERLAP_POLICY" default:"inclusive"`
	SeedDemo        bool          `envconfig:"SEED_DEMO" default:"false"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Load reads HOTEL_* variables and validates them.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("hotel", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to process env config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot act on.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Newf("invalid port %d", c.Port)
	}
	switch c.BookingStore {
	case StoreMemory, StoreSQLite:
	default:
		return errors.Newf("unknown booking store %q (want %q or %q)", c.BookingStore, StoreMemory, StoreSQLite)
	}
	if _, err := generic.ParseOverlapPolicy(c.OverlapPolicy); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Overlap returns the parsed overlap policy.
func (c Config) Overlap() generic.OverlapPolicy {
	p, err := generic.ParseOverlapPolicy(c.OverlapPolicy)
	if err != nil {
		return generic.OverlapInclusive
	}
	return p
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// NewTestConfig returns defaults suitable for tests.
func NewTestConfig() Config {
	return Config{
		Port:            8889,
		LogLevel:        "error",
		BookingStore:    StoreMemory,
		SQLiteDSN:       ":memory:",
		OverlapPolicy:   string(generic.OverlapInclusive),
		CORSOrigins:     []string{"http://localhost:8080"},
		ShutdownTimeout: time.Second,
	}
}
