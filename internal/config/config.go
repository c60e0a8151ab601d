package config

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name.
const Prefix = "EASYCURL"

// Config defines library settings shared by every handle in the process.
type Config struct {
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	Debug            bool          `envconfig:"DEBUG" default:"false"`
	ProgressInterval time.Duration `envconfig:"PROGRESS_INTERVAL" default:"1s" validate:"gt=0"`
}

// Default returns a Config with the same values Load yields on an empty environment.
func Default() Config {
	return Config{
		LogLevel:         "info",
		LogFormat:        "text",
		ProgressInterval: time.Second,
	}
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing env: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Level maps LogLevel onto a slog.Level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds a logger writing to w in the configured format and level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}

	var h slog.Handler
	if c.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("lib", "easycurl")
}
