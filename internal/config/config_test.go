package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OpenWeatherAPIKey != "test-key" {
		t.Fatalf("unexpected api key %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected http timeout %v", cfg.HTTPTimeout)
	}
	if cfg.RefreshInterval != 10*time.Minute {
		t.Fatalf("unexpected refresh interval %v", cfg.RefreshInterval)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.SearchDebounce)
	}
	if cfg.GeolocationTimeout != 10*time.Second {
		t.Fatalf("unexpected geolocation timeout %v", cfg.GeolocationTimeout)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("REFRESH_INTERVAL", "0s")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected http timeout %v", cfg.HTTPTimeout)
	}
	if cfg.RefreshInterval != 0 {
		t.Fatalf("expected disabled refresh, got %v", cfg.RefreshInterval)
	}
	if cfg.SearchDebounce != 150*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.SearchDebounce)
	}
	if cfg.Port != "9090" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
