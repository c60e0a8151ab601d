package config_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/adamwoolhether/easycurl/internal/config"
	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("EASYCURL_LOG_LEVEL", "debug")
	t.Setenv("EASYCURL_LOG_FORMAT", "json")
	t.Setenv("EASYCURL_DEBUG", "true")
	t.Setenv("EASYCURL_PROGRESS_INTERVAL", "250ms")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := config.Config{
		LogLevel:         "debug",
		LogFormat:        "json",
		Debug:            true,
		ProgressInterval: 250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{
			name:  "unknown level",
			key:   "EASYCURL_LOG_LEVEL",
			value: "verbose",
			field: "EASYCURL_LOG_LEVEL",
		},
		{
			name:  "unknown format",
			key:   "EASYCURL_LOG_FORMAT",
			value: "xml",
			field: "EASYCURL_LOG_FORMAT",
		},
		{
			name:  "zero interval",
			key:   "EASYCURL_PROGRESS_INTERVAL",
			value: "0s",
			field: "EASYCURL_PROGRESS_INTERVAL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var fe config.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %T: %v", err, err)
			}
			if fe[0].Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, fe[0].Field)
			}
		})
	}
}

func TestLoad_Unparsable(t *testing.T) {
	t.Setenv("EASYCURL_DEBUG", "maybe")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unparsable bool")
	}
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer

	cfg := config.Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected json warn line, got: %s", out)
	}
	if !strings.Contains(out, `"lib":"easycurl"`) {
		t.Errorf("expected lib attr, got: %s", out)
	}
}

func TestConfig_Level(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	for in, want := range testCases {
		cfg := config.Config{LogLevel: in}
		if got := cfg.Level(); got != want {
			t.Errorf("%s: expected %v, got %v", in, want, got)
		}
	}
}
