package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	os.Setenv("HTTP_ADDRESS", "")
	os.Setenv("GEMINI_MODEL", "")
	os.Setenv("TRANSLATE_QUIET_MS", "")
	cfg := Load()
	if cfg.HTTPAddress == "" {
		t.Fatalf("expected default http address")
	}
	if cfg.GeminiModel == "" {
		t.Fatalf("expected default gemini model")
	}
	if cfg.QuietInterval != 500*time.Millisecond {
		t.Fatalf("expected default quiet interval, got %s", cfg.QuietInterval)
	}
}

func TestLoad_QuietIntervalOverride(t *testing.T) {
	os.Setenv("TRANSLATE_QUIET_MS", "250")
	defer os.Unsetenv("TRANSLATE_QUIET_MS")
	cfg := Load()
	if cfg.QuietInterval != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", cfg.QuietInterval)
	}
}

func TestLoad_InvalidQuietIntervalFallsBack(t *testing.T) {
	os.Setenv("TRANSLATE_QUIET_MS", "not-a-number")
	defer os.Unsetenv("TRANSLATE_QUIET_MS")
	cfg := Load()
	if cfg.QuietInterval != 500*time.Millisecond {
		t.Fatalf("expected default on invalid value, got %s", cfg.QuietInterval)
	}
}
