package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CARDS_PATH", "CARDS_URL", "TERMS_PATH", "CORS_ALLOWED_ORIGINS",
		"DISCORD_BOT_TOKEN", "DISCORD_BOT_MODE", "CURIOSA_BASE_URL", "CURIOSA_TIMEOUT",
		"CURIOSA_RPS", "DECK_CACHE_SIZE", "DECK_CACHE_TTL", "MAX_OVERLAP_DECKS",
		"CATALOG_REFRESH_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CuriosaTimeout != 3*time.Second {
		t.Errorf("Expected default timeout 3s, got %s", cfg.CuriosaTimeout)
	}
	if cfg.MaxOverlapDecks != 3 {
		t.Errorf("Expected default max overlap decks 3, got %d", cfg.MaxOverlapDecks)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("Expected 2 default CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.BotEnabled() {
		t.Error("Bot should be disabled without a token")
	}
	if cfg.Debug() {
		t.Error("Debug mode should be off by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_BOT_MODE", "debug")
	t.Setenv("CURIOSA_TIMEOUT", "10s")
	t.Setenv("CURIOSA_RPS", "0.5")
	t.Setenv("MAX_OVERLAP_DECKS", "5")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.BotEnabled() || !cfg.Debug() {
		t.Error("Expected bot enabled in debug mode")
	}
	if cfg.CuriosaTimeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %s", cfg.CuriosaTimeout)
	}
	if cfg.CuriosaRPS != 0.5 {
		t.Errorf("Expected 0.5 rps, got %g", cfg.CuriosaRPS)
	}
	if cfg.MaxOverlapDecks != 5 {
		t.Errorf("Expected 5 max overlap decks, got %d", cfg.MaxOverlapDecks)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(Config) bool
	}{
		{"CURIOSA_TIMEOUT", "soon", func(c Config) bool { return c.CuriosaTimeout == 3*time.Second }},
		{"CURIOSA_RPS", "-1", func(c Config) bool { return c.CuriosaRPS == 2 }},
		{"DECK_CACHE_SIZE", "many", func(c Config) bool { return c.DeckCacheSize == 128 }},
		{"MAX_OVERLAP_DECKS", "0", func(c Config) bool { return c.MaxOverlapDecks == 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if !tt.check(Load()) {
				t.Errorf("%s=%q should fall back to its default", tt.key, tt.value)
			}
		})
	}
}
