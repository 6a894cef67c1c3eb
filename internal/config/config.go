// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a comma-separated
	// list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// MaxBodyBytes caps the size of request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// JWTSecret is the HS256 key bearer tokens are verified with. When it is
	// empty the server runs in development mode and every request is made
	// as DevOwnerID.
	JWTSecret string `env:"JWT_SECRET"`

	// DevOwnerID is the identity used for all requests when JWTSecret is empty.
	DevOwnerID string `env:"DEV_OWNER_ID"`
}

// Load reads configuration from environment variables and returns a Config.
// Variables that are set but empty are treated as unset, so their defaults apply.
// Returns an error naming any required variable that is missing or invalid.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, env.Options{Environment: nonEmptyEnviron()}); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.JWTSecret == "" && c.DevOwnerID == "" {
		errs = append(errs, errors.New("one of JWT_SECRET or DEV_OWNER_ID must be set"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// nonEmptyEnviron returns the process environment without empty variables.
func nonEmptyEnviron() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// cleanList trims every entry and drops empty ones.
func cleanList(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
