package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davidsmarcelino/nps-dashboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Fetch    FetchConfig
	Identify IdentifyConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds data source settings. When both SheetURL and DataFile are
// empty the dashboard starts in demo mode with synthetic survey data.
type DataConfig struct {
	SheetURL string
	DataFile string
	// ScoreColumns, when set, bypasses column identification entirely.
	// Semicolon-separated in the environment, since header names often
	// contain commas.
	ScoreColumns []string
}

// FetchConfig holds document retrieval settings
type FetchConfig struct {
	Timeout time.Duration
}

// IdentifyConfig holds the column identification thresholds as valid-value
// percentages in [0,100].
type IdentifyConfig struct {
	SuggestiveMinValidPct float64
	UnnamedMinValidPct    float64
	LenientMinValidPct    float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			SheetURL:     getEnvOrDefault("SHEET_URL", ""),
			DataFile:     getEnvOrDefault("DATA_FILE", ""),
			ScoreColumns: splitList(getEnvOrDefault("NPS_COLUMNS", "")),
		},
		Fetch: FetchConfig{
			Timeout: getEnvDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
		},
		Identify: IdentifyConfig{
			SuggestiveMinValidPct: getEnvFloatOrDefault("NPS_MIN_VALID_PCT_SUGGESTIVE", 30),
			UnnamedMinValidPct:    getEnvFloatOrDefault("NPS_MIN_VALID_PCT_UNNAMED", 50),
			LenientMinValidPct:    getEnvFloatOrDefault("NPS_MIN_VALID_PCT_LENIENT", 10),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	for _, pct := range []float64{
		config.Identify.SuggestiveMinValidPct,
		config.Identify.UnnamedMinValidPct,
		config.Identify.LenientMinValidPct,
	} {
		if pct < 0 || pct > 100 {
			return errors.ConfigInvalid("identification thresholds must be percentages in [0,100]")
		}
	}
	if config.Fetch.Timeout <= 0 {
		return errors.ConfigInvalid("fetch timeout must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
