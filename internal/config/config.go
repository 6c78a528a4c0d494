package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the battle tools
type Config struct {
	Roster RosterConfig
	Redis  RedisConfig
	Log    LogConfig
}

// RosterConfig locates the knight roster document
type RosterConfig struct {
	File string `env:"KNIGHTS_ROSTER_FILE" envDefault:"data/knights.yaml"`
}

// RedisConfig holds Redis-specific configuration. An empty URL selects the
// in-memory roster store.
type RedisConfig struct {
	URL       string `env:"REDIS_URL"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"knights"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Roster.File == "" {
		return nil, fmt.Errorf("KNIGHTS_ROSTER_FILE cannot be empty")
	}

	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL %q is not a valid level: %w", cfg.Log.Level, err)
	}

	switch cfg.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, cfg.Log.Format)
	}

	return cfg, nil
}
