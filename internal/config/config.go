package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	UpstreamURL             string
	UpstreamToken           string
	DatabaseURL             string
	UpstreamRetryMax        int
	UpstreamRetryBaseDelay  time.Duration
	StatusPollInterval      time.Duration
	SnapshotInterval        time.Duration
	AutoRefreshSchedule     string
	RefreshFallbackInterval time.Duration
	HouseholdSlug           string
	HTTPPort                string
	AdminAPIKey             string
	SheetsSpreadsheetID     string
	SheetsCredentialsJSON   string
	XLSXExportPath          string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		UpstreamURL:             envOrDefault("UPSTREAM_URL", "http://localhost:3000"),
		UpstreamToken:           envOrDefaultWarn("UPSTREAM_TOKEN", ""),
		DatabaseURL:             envOrDefaultWarn("DATABASE_URL", ""),
		UpstreamRetryMax:        envOrDefaultInt("UPSTREAM_RETRY_MAX", 5),
		UpstreamRetryBaseDelay:  envOrDefaultDuration("UPSTREAM_RETRY_BASE_DELAY", 2*time.Second),
		StatusPollInterval:      envOrDefaultDuration("STATUS_POLL_INTERVAL", 60*time.Second),
		SnapshotInterval:        envOrDefaultDuration("SNAPSHOT_INTERVAL", 24*time.Hour),
		AutoRefreshSchedule:     envOrDefault("AUTO_REFRESH_SCHEDULE", "@every 5m"),
		RefreshFallbackInterval: envOrDefaultDuration("REFRESH_FALLBACK_INTERVAL", 15*time.Minute),
		HouseholdSlug:           envOrDefault("HOUSEHOLD_SLUG", "default"),
		HTTPPort:                envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:             envOrDefault("ADMIN_API_KEY", ""),
		SheetsSpreadsheetID:     envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON:   envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
		XLSXExportPath:          envOrDefault("XLSX_EXPORT_PATH", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
