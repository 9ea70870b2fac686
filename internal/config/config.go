// Package config loads service settings from the environment. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const maxWorkers = 10

type Config struct {
	DatabaseURL string
	Port        string

	Workers   int
	QueueSize int
	ChunkSize int
	BaseDir   string

	AutoMigrate bool

	LogLevel  string
	LogFormat string

	BodyLimit string
	RateLimit float64
}

// Load reads the configuration. DatabaseURL is only required when
// requireDatabase is set.
func Load(requireDatabase bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:        getEnv("PORT", "8080"),
		Workers:     clamp(parseIntEnv("IMPORT_WORKERS", 4), 1, maxWorkers),
		QueueSize:   parseIntEnv("IMPORT_QUEUE_SIZE", 64),
		ChunkSize:   parseIntEnv("IMPORT_CHUNK_SIZE", 100),
		BaseDir:     getEnv("IMPORT_BASE_DIR", "."),
		AutoMigrate: parseBoolEnv("AUTO_MIGRATE", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		BodyLimit:   getEnv("HTTP_BODY_LIMIT", "10M"),
		RateLimit:   parseFloatEnv("HTTP_RATE_LIMIT", 20),
	}

	if requireDatabase && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.QueueSize <= 0 {
		return nil, fmt.Errorf("IMPORT_QUEUE_SIZE must be positive, got %d", cfg.QueueSize)
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("IMPORT_CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseFloatEnv(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseBoolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
