package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration, loaded from the environment
type Config struct {
	Port           string
	DBPath         string
	MigrationsPath string

	// Log rotation; stderr only when LogFile is empty
	LogFile      string
	LogMaxSizeMB int
	LogMaxAge    int

	// Default expansion horizon for recurring trips, in days
	HorizonDays int
}

// Load reads configuration from environment variables, falling back to
// development defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/transport.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogMaxSizeMB:   getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxAge:      getEnvInt("LOG_MAX_AGE_DAYS", 28),
		HorizonDays:    getEnvInt("GENERATION_HORIZON_DAYS", 90),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
