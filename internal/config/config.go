// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the bot's process configuration
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`

	// GuildID registers commands to one guild for development; empty registers globally
	GuildID string `env:"GUILD_ID"`

	// GMRoleID is the Discord role allowed to reactivate and grant inspiration
	GMRoleID string `env:"GM_ROLE_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// MetricsAddr serves /metrics; empty disables the endpoint
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// DiceSeed makes the dice roller deterministic when non-zero
	DiceSeed int64 `env:"DICE_SEED"`

	// AsyncEvaluation evaluates new roll terms on the async path
	AsyncEvaluation bool `env:"ASYNC_EVALUATION" envDefault:"false"`
}

// Load reads the given .env files, when present, and parses the environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSONLogs reports whether logs should be written as JSON
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}
