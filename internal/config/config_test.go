package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-ruletext/internal/config"
	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
)

func TestLoadEnvironmentDefaults(t *testing.T) {
	cfg, err := config.LoadEnvironment(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, &config.Config{
		Workers:       4,
		LookupTimeout: 5 * time.Second,
		LogLevel:      "info",
		LogFormat:     config.LogFormatText,
	}, cfg)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := config.LoadEnvironment(map[string]string{
		"RULETEXT_REDIS_ADDR":     "localhost:6379",
		"RULETEXT_WORKERS":        "8",
		"RULETEXT_LOOKUP_TIMEOUT": "250ms",
		"RULETEXT_LOG_LEVEL":      "debug",
		"RULETEXT_LOG_FORMAT":     "json",
		"WORKERS":                 "99",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.LookupTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, config.LogFormatJSON, cfg.LogFormat)
}

func TestLoadEnvironmentRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name        string
		environment map[string]string
		invalidArg  bool
	}{
		{name: "zero workers", environment: map[string]string{"RULETEXT_WORKERS": "0"}, invalidArg: true},
		{name: "too many workers", environment: map[string]string{"RULETEXT_WORKERS": "65"}, invalidArg: true},
		{name: "unknown level", environment: map[string]string{"RULETEXT_LOG_LEVEL": "loud"}, invalidArg: true},
		{name: "unknown format", environment: map[string]string{"RULETEXT_LOG_FORMAT": "xml"}, invalidArg: true},
		{name: "two stores", environment: map[string]string{
			"RULETEXT_REDIS_ADDR":  "localhost:6379",
			"RULETEXT_SQLITE_PATH": "/tmp/lookups.db",
		}, invalidArg: true},
		{name: "unparseable duration", environment: map[string]string{"RULETEXT_LOOKUP_TIMEOUT": "soon"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.LoadEnvironment(tc.environment)
			assert.Nil(t, cfg)
			require.Error(t, err)
			if tc.invalidArg {
				assert.True(t, errors.IsInvalidArgument(err))
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	var cfg *config.Config
	assert.Error(t, cfg.Validate())
}
