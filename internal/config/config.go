package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	CurrencyAPI CurrencyAPIConfig
	Sync        SyncConfig
	Security    SecurityConfig
	Log         LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// CurrencyAPIConfig holds the remote rate provider settings.
type CurrencyAPIConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// SyncConfig controls the refresh behaviour of the sync coordinator.
type SyncConfig struct {
	// FetchWhenEmpty makes a refresh contact the provider whenever the local cache is empty,
	// even if the persisted timestamp is still fresh.
	FetchWhenEmpty bool
	// Schedule is a cron spec for background stale checks. Empty disables the scheduler.
	Schedule string
}

// SecurityConfig holds secrets used to protect data at rest and the settings routes.
type SecurityConfig struct {
	EncryptionKey  string
	InternalAPIKey string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("CURRENCY_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENCY_API_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid CURRENCY_API_TIMEOUT: must be positive")
	}

	fetchWhenEmpty, err := strconv.ParseBool(getEnv("SYNC_FETCH_WHEN_EMPTY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_FETCH_WHEN_EMPTY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/currency_rates.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		CurrencyAPI: CurrencyAPIConfig{
			Endpoint: getEnv("CURRENCY_API_ENDPOINT", "https://api.currencyapi.com/v3/latest"),
			APIKey:   os.Getenv("CURRENCY_API_KEY"),
			Timeout:  timeout,
		},
		Sync: SyncConfig{
			FetchWhenEmpty: fetchWhenEmpty,
			Schedule:       os.Getenv("SYNC_SCHEDULE"),
		},
		Security: SecurityConfig{
			EncryptionKey:  os.Getenv("ENCRYPTION_KEY"),
			InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
