package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	OllamaURL       string
	OllamaModel     string
	GenerateTimeout time.Duration
	RetentionDays   int
	SweepInterval   time.Duration
	WorkerCount     int
	WorkerQueueSize int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":5000"),
		DBPath:          envOr("DB_PATH", "file:puzzle_game.db"),
		LogLevel:        strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		OllamaURL:       strings.TrimRight(os.Getenv("OLLAMA_URL"), "/"),
		OllamaModel:     envOr("OLLAMA_MODEL", "llama3.2:3b"),
		GenerateTimeout: time.Duration(envIntOr("GENERATE_TIMEOUT_SECONDS", 30)) * time.Second,
		RetentionDays:   envIntOr("RETENTION_DAYS", 7),
		SweepInterval:   time.Duration(envIntOr("SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		WorkerCount:     envIntOr("WORKER_COUNT", 1),
		WorkerQueueSize: envIntOr("WORKER_QUEUE_SIZE", 8),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.OllamaURL != "" && !strings.HasPrefix(c.OllamaURL, "http://") && !strings.HasPrefix(c.OllamaURL, "https://") {
		errs = append(errs, fmt.Errorf("OLLAMA_URL must start with http:// or https:// (got %q)", c.OllamaURL))
	}
	if c.OllamaURL != "" && c.OllamaModel == "" {
		errs = append(errs, errors.New("OLLAMA_MODEL cannot be empty when OLLAMA_URL is set"))
	}
	if c.GenerateTimeout <= 0 {
		errs = append(errs, errors.New("GENERATE_TIMEOUT_SECONDS must be positive"))
	}
	if c.RetentionDays < 1 {
		errs = append(errs, fmt.Errorf("RETENTION_DAYS must be at least 1 (got %d)", c.RetentionDays))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL_MINUTES must be positive"))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1 (got %d)", c.WorkerCount))
	}
	if c.WorkerQueueSize < 1 {
		errs = append(errs, fmt.Errorf("WORKER_QUEUE_SIZE must be at least 1 (got %d)", c.WorkerQueueSize))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
