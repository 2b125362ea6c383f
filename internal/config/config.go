// Package config loads service configuration by layering defaults, an
// optional YAML file, and PORTAL_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DatabaseDSN is the Postgres connection string.
	DatabaseDSN string `koanf:"database_dsn"`

	// AuthMode selects the identity provider: "stub" keeps the
	// portal's placeholder identity, "session" resolves bearer tokens
	// against the session store.
	AuthMode string `koanf:"auth_mode"`

	// StubUserID is the identity every request gets in stub mode.
	StubUserID string `koanf:"stub_user_id"`

	// SessionTTL bounds session lifetime.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// RedisAddr enables the Redis session store when non-empty;
	// otherwise sessions live in memory.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

func defaults() *Config {
	return &Config{
		Addr:        ":8080",
		LogLevel:    "info",
		DatabaseDSN: "host=localhost user=postgres password=postgres dbname=portal port=5432 sslmode=disable",
		AuthMode:    "stub",
		StubUserID:  "test-user-id",
		SessionTTL:  24 * time.Hour,
	}
}

// Load builds a Config. Order of precedence (low -> high):
//  1. defaults
//  2. YAML file named by PORTAL_CONFIG, if set
//  3. env vars (PORTAL_ADDR, PORTAL_DATABASE_DSN, ...)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("PORTAL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// PORTAL_AUTH_MODE -> auth_mode; underscores kept to match the
	// koanf tags above.
	envProvider := env.Provider("PORTAL_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "portal_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.AuthMode != "stub" && cfg.AuthMode != "session" {
		return nil, errors.New("auth_mode must be stub or session")
	}
	if cfg.AuthMode == "stub" && cfg.StubUserID == "" {
		return nil, errors.New("stub_user_id must not be empty in stub mode")
	}
	return &cfg, nil
}
