/*
Package config loads runtime settings from the environment. A .env file in
the working directory is read first when present; real environment
variables always win over it.
*/
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port   int
	AppEnv string

	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiModel      string
	GeminiTimeout    time.Duration
	GeminiMaxRetries int
	GeminiBackoff    time.Duration

	ChatCacheSize   int
	ChatMaxTurns    int
	ChatMaxSessions int
	ChatRateLimit   float64

	SessionSecret string
}

// Load reads .env (if any) and returns the resolved configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, reading from environment")
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:   getInt("PORT", 8080),
		AppEnv: getEnv("APP_ENV", "development"),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:    getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash-preview-09-2025"),
		GeminiTimeout:    getDuration("GEMINI_TIMEOUT", 30*time.Second),
		GeminiMaxRetries: getInt("GEMINI_MAX_RETRIES", 3),
		GeminiBackoff:    getDuration("GEMINI_BACKOFF", time.Second),

		ChatCacheSize:   getInt("CHAT_CACHE_SIZE", 128),
		ChatMaxTurns:    getInt("CHAT_MAX_TURNS", 40),
		ChatMaxSessions: getInt("CHAT_MAX_SESSIONS", 1000),
		ChatRateLimit:   getFloat("CHAT_RATE_LIMIT", 2),

		SessionSecret: getEnv("SESSION_SECRET", ""),
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
