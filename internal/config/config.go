package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Local store (SQLite file; ":memory:" for throwaway sessions)
	DBPath string

	// Remote snapshot store. Sync is disabled when RemoteDSN is empty.
	RemoteDriver string // "postgres" or "sqlite"
	RemoteDSN    string

	// Background jobs (cron expressions)
	SyncSchedule     string
	ReminderSchedule string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:   getEnv("PORT", "8080"),
		Env:    getEnv("ENV", "development"),
		DBPath: getEnv("DB_PATH", "financehub.db"),

		RemoteDriver: getEnv("REMOTE_DRIVER", "postgres"),
		RemoteDSN:    getEnv("REMOTE_DSN", ""),

		SyncSchedule:     getEnv("SYNC_SCHEDULE", "@every 5m"),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "@hourly"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// SyncEnabled reports whether a remote store is configured.
func (c *Config) SyncEnabled() bool {
	return c.RemoteDSN != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
