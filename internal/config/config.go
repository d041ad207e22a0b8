// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is loaded
// first when present (local development convenience).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string for the partition store.
	// Optional: when empty the server runs on an in-memory partition store
	// (state survives only for the process lifetime).
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoragePrefix prefixes every partition key ("<prefix>__<scope>").
	// Defaults to "concierge_trips".
	StoragePrefix string

	// SyncURL is the base URL of the remote user-data store. Optional:
	// when empty remote sync is disabled entirely.
	SyncURL string

	// ActivitiesURL / TransfersURL are the base URLs of the partner search
	// services. Optional: an empty URL disables that enrichment path.
	ActivitiesURL string
	TransfersURL  string

	// PartnerTimeout bounds each partner search call. Defaults to 15s.
	PartnerTimeout time.Duration
}

// Load reads configuration from the environment and returns a Config.
// Every value has a default; nothing is strictly required, matching the
// degrade-don't-fail posture of the core (no database means in-memory
// partitions, no sync URL means no remote sync).
func Load() (Config, error) {
	// Load .env if present; missing file is not an error.
	godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoragePrefix:  getEnv("STORAGE_PREFIX", "concierge_trips"),
		SyncURL:        os.Getenv("SYNC_URL"),
		ActivitiesURL:  os.Getenv("ACTIVITIES_URL"),
		TransfersURL:   os.Getenv("TRANSFERS_URL"),
		PartnerTimeout: time.Duration(getEnvAsInt("PARTNER_TIMEOUT_SECONDS", 15)) * time.Second,
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAsInt returns the integer value of the environment variable named by
// key, or fallback when unset or unparseable.
func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
