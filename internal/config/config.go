package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"redpulse/internal/redmine"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Redmine     redmine.Config
	CacheTTL    time.Duration
	RefreshCron string
	DataPath    string
	LogDir      string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	baseURL := getEnv("REDMINE_URL", "")
	if baseURL == "" {
		return nil, fmt.Errorf("REDMINE_URL is not set")
	}
	apiKey := getEnv("REDMINE_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("REDMINE_API_KEY is not set")
	}

	cfg := &AppConfig{
		Redmine: redmine.Config{
			BaseURL:      baseURL,
			APIKey:       apiKey,
			Timeout:      time.Duration(getEnvInt("REDMINE_TIMEOUT_SECONDS", 30)) * time.Second,
			RetryMax:     getEnvInt("REDMINE_RETRY_MAX", 2),
			RetryBackoff: time.Duration(getEnvInt("REDMINE_RETRY_BACKOFF_MS", 500)) * time.Millisecond,
		},
		CacheTTL:    time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		RefreshCron: getEnv("CACHE_REFRESH_CRON", ""),
		DataPath:    dataPath,
		LogDir:      logDir,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
