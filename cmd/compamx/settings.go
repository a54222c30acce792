package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings holds everything the CLI reads from its environment: a
// compamx.yaml file next to the binary or in the home directory, .env
// entries, and COMPAMX_* environment variables, in ascending priority.
type Settings struct {
	FiscalFile  string `mapstructure:"fiscal_file"`
	DatabaseURL string `mapstructure:"database_url"`

	BanxicoToken    string `mapstructure:"banxico_token"`
	INEGIToken      string `mapstructure:"inegi_token"`
	BanxicoSchedule string `mapstructure:"banxico_schedule"`
	INEGISchedule   string `mapstructure:"inegi_schedule"`
	Timezone        string `mapstructure:"timezone"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// LoadSettings reads configuration from all sources.
func LoadSettings() (*Settings, error) {
	// A missing .env is fine; explicit files are for development setups.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("compamx")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.compamx")

	v.SetDefault("fiscal_file", "data/fiscal2025.yaml")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetEnvPrefix("COMPAMX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &s, nil
}

// initializeLogger builds the zap logger the CLI uses everywhere.
func initializeLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q (want console or json)", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}
