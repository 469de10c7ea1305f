package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordpuzzle/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":5000",
		DBPath:          "test.db",
		LogLevel:        "INFO",
		OllamaURL:       "",
		OllamaModel:     "llama3.2:3b",
		GenerateTimeout: 30 * time.Second,
		RetentionDays:   7,
		SweepInterval:   time.Hour,
		WorkerCount:     1,
		WorkerQueueSize: 8,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_OllamaSettings(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		model         string
		expectedError string
	}{
		{
			name:          "url without scheme",
			url:           "localhost:11434",
			model:         "llama3.2:3b",
			expectedError: "OLLAMA_URL",
		},
		{
			name:          "url without model",
			url:           "http://localhost:11434",
			model:         "",
			expectedError: "OLLAMA_MODEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.OllamaURL = tt.url
			cfg.OllamaModel = tt.model

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_OllamaURLAccepted(t *testing.T) {
	cfg := validConfig()
	cfg.OllamaURL = "http://docker.lan:11434"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{
			name:  "invalid level",
			level: "INVALID",
		},
		{
			name:  "empty level",
			level: "",
		},
		{
			name:  "lowercase valid level",
			level: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.level == "debug" {
				// Lowercase is accepted.
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		workers       int
		queue         int
		expectedError string
	}{
		{
			name:          "zero workers",
			workers:       0,
			queue:         8,
			expectedError: "WORKER_COUNT",
		},
		{
			name:          "zero queue",
			workers:       1,
			queue:         0,
			expectedError: "WORKER_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.WorkerCount = tt.workers
			cfg.WorkerQueueSize = tt.queue

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel: "INVALID",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "GENERATE_TIMEOUT_SECONDS")
	assert.Contains(t, errStr, "RETENTION_DAYS")
	assert.Contains(t, errStr, "SWEEP_INTERVAL_MINUTES")
	assert.Contains(t, errStr, "WORKER_COUNT")
	assert.Contains(t, errStr, "WORKER_QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OLLAMA_URL", "http://ollama.lan:11434/")
	t.Setenv("RETENTION_DAYS", "14")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "http://ollama.lan:11434", cfg.OllamaURL)
	assert.Equal(t, 14, cfg.RetentionDays)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("RETENTION_DAYS", "soon")

	cfg := config.Load()

	assert.Equal(t, 7, cfg.RetentionDays)
}
