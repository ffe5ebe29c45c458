package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort string
	DBPath  string
	// DataDir holds the CSV sources of the corpus.
	DataDir string
	// KnowledgeDir optionally points at a directory with tables.yaml and
	// topics/ overriding the embedded knowledge tables.
	KnowledgeDir    string
	SearchThreshold float64
	SearchWorkers   int
	// AnswerCacheSize is the number of cached answers; 0 disables the cache.
	AnswerCacheSize int
	AnswerCacheTTL  time.Duration
	LogLevel        slog.Level
	LogFormat       string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and rejects values that do not parse.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:      getEnv("API_PORT", "9000"),
		DBPath:       getEnv("DB_PATH", "./data/diabetes-ai.db"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		KnowledgeDir: getEnv("KNOWLEDGE_DIR", ""),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", LogFormatText)),
	}

	if cfg.SearchThreshold, err = strconv.ParseFloat(getEnv("SEARCH_THRESHOLD", "0.35"), 64); err != nil {
		return nil, fmt.Errorf("SEARCH_THRESHOLD must be a valid number: %w", err)
	}
	if cfg.SearchThreshold < 0 || cfg.SearchThreshold > 1 {
		return nil, fmt.Errorf("SEARCH_THRESHOLD must be between 0 and 1")
	}

	if cfg.SearchWorkers, err = strconv.Atoi(getEnv("SEARCH_WORKERS", "4")); err != nil {
		return nil, fmt.Errorf("SEARCH_WORKERS must be a valid integer: %w", err)
	}
	if cfg.SearchWorkers <= 0 {
		return nil, fmt.Errorf("SEARCH_WORKERS must be greater than 0")
	}

	if cfg.AnswerCacheSize, err = strconv.Atoi(getEnv("ANSWER_CACHE_SIZE", "256")); err != nil {
		return nil, fmt.Errorf("ANSWER_CACHE_SIZE must be a valid integer: %w", err)
	}
	if cfg.AnswerCacheSize < 0 {
		return nil, fmt.Errorf("ANSWER_CACHE_SIZE cannot be negative")
	}

	if cfg.AnswerCacheTTL, err = time.ParseDuration(getEnv("ANSWER_CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("ANSWER_CACHE_TTL must be a valid duration: %w", err)
	}
	if cfg.AnswerCacheTTL < 0 {
		return nil, fmt.Errorf("ANSWER_CACHE_TTL cannot be negative")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return nil, fmt.Errorf("LOG_FORMAT must be %q or %q", LogFormatText, LogFormatJSON)
	}

	// Create the database directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// NewLogHandler builds the slog handler selected by LogFormat and LogLevel.
func (c *Config) NewLogHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
