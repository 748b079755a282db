package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// ClinicName is the name the assistant greets patients with.
	ClinicName string

	// DatabasePath is the SQLite file for appointments and reviews.
	// Empty means everything stays in memory.
	DatabasePath string

	// SessionTTL is how long an idle conversation session survives.
	SessionTTL time.Duration

	// SessionSweepEvery is the call-count cadence for expired-session sweeps.
	SessionSweepEvery int

	// SeedDoctors controls whether the sample doctor roster is loaded at startup.
	SeedDoctors bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ClinicName:        getEnv("CLINIC_NAME", "DentalClinic Pro"),
		DatabasePath:      getEnv("DATABASE_PATH", ""),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", time.Hour),
		SessionSweepEvery: getEnvAsInt("SESSION_SWEEP_EVERY", 10),
		SeedDoctors:       getEnvAsBool("SEED_DOCTORS", true),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
