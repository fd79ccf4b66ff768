// Package config loads extractor settings from RULETEXT_* environment variables
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
)

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// MaxWorkers caps the batch worker pool
const MaxWorkers = 64

// Config holds the extractor settings. Redis and SQLite are both optional;
// when neither is set every lookup table comes from the built-in fallback.
type Config struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	SQLitePath    string        `env:"SQLITE_PATH"`
	Workers       int           `env:"WORKERS" envDefault:"4"`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the RULETEXT_* environment into a validated Config
func Load() (*Config, error) {
	return LoadEnvironment(nil)
}

// LoadEnvironment parses the given variables instead of the process
// environment. A nil map reads the process environment.
func LoadEnvironment(environment map[string]string) (*Config, error) {
	opts := env.Options{Prefix: "RULETEXT_"}
	if environment != nil {
		opts.Environment = environment
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.RedisAddr != "" && c.SQLitePath != "" {
		vb.InvalidField("SQLitePath", "cannot be combined with RedisAddr")
	}
	errors.ValidateRange("Workers", c.Workers, 1, MaxWorkers, vb)
	if c.LookupTimeout < 0 {
		vb.InvalidField("LookupTimeout", "must not be negative")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("LogLevel", "must be one of debug, info, warn, error")
	}
	errors.ValidateEnum("LogFormat", strings.ToLower(c.LogFormat), []string{LogFormatJSON, LogFormatText}, vb)

	return vb.Build()
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
