package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-ruletext/internal/config"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "ruletext",
	Short: "Extract structured rules from tabletop RPG rule text",
	Long: `ruletext reads classes, races, backgrounds, feats, items and spells in
their imported form and extracts the mechanics their text describes:
proficiencies, modifiers, counters, spell slots, saving throws and more.

Settings are read in this order (highest first):
1. CLI flags
2. Environment variables (RULETEXT_*), including an optional .env file
3. Config file (--config)
4. Defaults`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment when present")
	flags.String("redis-addr", "", "Redis address holding the lookup tables")
	flags.String("sqlite-path", "", "SQLite database holding the lookup tables")
	flags.Duration("lookup-timeout", 0, "timeout for loading one lookup table")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (json, text)")

	for _, name := range []string{"redis-addr", "sqlite-path", "lookup-timeout", "log-level", "log-format"} {
		_ = viper.BindPFlag(viperKey(name), flags.Lookup(name))
	}

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resolveCmd)
}

func viperKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// initConfig loads the dotenv file and the config file
func initConfig() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envFile, err)
		}
	}

	viper.SetEnvPrefix("RULETEXT")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
		}
	}
}

// loadSettings builds the Config from the environment, then applies every
// value viper knows about on top
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if viper.IsSet("redis_addr") {
		cfg.RedisAddr = viper.GetString("redis_addr")
	}
	if viper.IsSet("sqlite_path") {
		cfg.SQLitePath = viper.GetString("sqlite_path")
	}
	if viper.IsSet("workers") {
		cfg.Workers = viper.GetInt("workers")
	}
	if viper.IsSet("lookup_timeout") {
		cfg.LookupTimeout = viper.GetDuration("lookup_timeout")
	}
	if viper.IsSet("log_level") {
		cfg.LogLevel = viper.GetString("log_level")
	}
	if viper.IsSet("log_format") {
		cfg.LogFormat = viper.GetString("log_format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.SetDefault(newLogger(cfg))
	return cfg, nil
}

// newLogger writes to stderr so stdout stays clean for payloads
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if strings.EqualFold(cfg.LogFormat, config.LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
