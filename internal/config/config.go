package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Backend selects where session history is persisted.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendNone     Backend = "none" // sessions are discarded
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	SessionBackend Backend `env:"SESSION_BACKEND" envDefault:"postgres"`
	PostgresDSN    string  `env:"POSTGRES_DSN" envDefault:"postgres://localhost:5432/adventure_quest"`
	RedisURL       string  `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	SaveDir string `env:"SAVE_DIR" envDefault:"."`

	// GameSeed pins the random source for deterministic replay.
	// 0 seeds from the clock.
	GameSeed int64 `env:"GAME_SEED" envDefault:"0"`
}

// Load reads configuration from the environment, after loading a .env
// file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.SessionBackend {
	case BackendPostgres, BackendRedis, BackendNone:
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q (expected postgres, redis or none)", cfg.SessionBackend)
	}

	return cfg, nil
}

// SlogLevel converts the configured log level string to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
