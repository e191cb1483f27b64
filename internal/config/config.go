// Package config loads CLI defaults from the environment
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	dterrors "github.com/KirkDiggler/dndtools/internal/errors"
)

// Log levels accepted by DNDTOOLS_LOG_LEVEL
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds defaults that command-line flags may override
type Config struct {
	// LogLevel is the minimum level written to stderr
	LogLevel string `env:"DNDTOOLS_LOG_LEVEL" envDefault:"warn"`

	// Jobs is the stats worker count; 0 means one per CPU
	Jobs int `env:"DNDTOOLS_JOBS" envDefault:"0"`

	// Seed makes rolls reproducible; 0 uses the crypto source
	Seed uint64 `env:"DNDTOOLS_SEED" envDefault:"0"`
}

// Load reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, dterrors.WrapWithCode(err, dterrors.CodeInvalidArgument, "failed to read env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, dterrors.WrapWithCode(err, dterrors.CodeInvalidArgument, "failed to parse environment")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := dterrors.NewValidationBuilder()

	dterrors.ValidateEnum("DNDTOOLS_LOG_LEVEL", c.LogLevel, LogLevels, vb)
	dterrors.ValidateMin("DNDTOOLS_JOBS", c.Jobs, 0, vb)

	return vb.Build()
}

// SlogLevel converts LogLevel for slog handlers
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
