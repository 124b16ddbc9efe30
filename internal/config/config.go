// Package config reads the server and bot settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting read at startup.
type Config struct {
	Port               string
	CardsPath          string
	CardsURL           string
	TermsPath          string
	CORSAllowedOrigins []string

	DiscordBotToken string
	DiscordBotMode  string

	CuriosaBaseURL  string
	CuriosaTimeout  time.Duration
	CuriosaRPS      float64
	DeckCacheSize   int
	DeckCacheTTL    time.Duration
	MaxOverlapDecks int
	RefreshInterval time.Duration
}

// Debug reports whether the bot runs in debug mode, which enables !stop.
func (c Config) Debug() bool {
	return c.DiscordBotMode == "debug"
}

// BotEnabled reports whether a Discord token was configured.
func (c Config) BotEnabled() bool {
	return c.DiscordBotToken != ""
}

// Load reads the configuration from the environment. Invalid values are
// logged and replaced by their defaults.
func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		CardsPath: getEnv("CARDS_PATH", "./data/cards.json"),
		CardsURL:  os.Getenv("CARDS_URL"),
		TermsPath: getEnv("TERMS_PATH", "./data/terms.toml"),
		CORSAllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},

		DiscordBotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordBotMode:  os.Getenv("DISCORD_BOT_MODE"),

		CuriosaBaseURL:  getEnv("CURIOSA_BASE_URL", "https://curiosa.io"),
		CuriosaTimeout:  getDuration("CURIOSA_TIMEOUT", 3*time.Second),
		CuriosaRPS:      getFloat("CURIOSA_RPS", 2),
		DeckCacheSize:   getInt("DECK_CACHE_SIZE", 128),
		DeckCacheTTL:    getDuration("DECK_CACHE_TTL", 10*time.Minute),
		MaxOverlapDecks: getInt("MAX_OVERLAP_DECKS", 3),
		RefreshInterval: getDuration("CATALOG_REFRESH_INTERVAL", 24*time.Hour),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("Warning: invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
