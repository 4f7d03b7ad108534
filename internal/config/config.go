package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings. Everything comes from the environment
// with sensible defaults, so running with no configuration at all works.
type Config struct {
	// DBPath overrides the database location; empty means the default
	// XDG data directory.
	DBPath string

	WorkSession  time.Duration
	BreakSession time.Duration
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		DBPath:       getEnv("KANDORO_DB_PATH", ""),
		WorkSession:  time.Duration(getEnvAsInt("KANDORO_WORK_MINUTES", 25)) * time.Minute,
		BreakSession: time.Duration(getEnvAsInt("KANDORO_BREAK_MINUTES", 5)) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
