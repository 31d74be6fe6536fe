package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string
	// HMACSecret keys the digest of input snapshots used for report caching
	HMACSecret string

	ForecastHorizon int
	HistoryMonths   int
	// UtilityUplift inflates the active rent total into the fallback revenue baseline
	UtilityUplift float64

	DigestSchedule   string
	DigestRecipients []string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
}

// NewConfig loads configuration from environment variables, primed from a .env file when present
func NewConfig() (*Config, error) {
	// A missing .env file is fine, the process environment is used as is.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=rental sslmode=disable"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		HMACSecret:     getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 8 * * 1"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "analytics@localhost"),
	}

	var err error
	if cfg.ForecastHorizon, err = getEnvInt("FORECAST_HORIZON", 6); err != nil {
		return nil, err
	}
	if cfg.HistoryMonths, err = getEnvInt("HISTORY_MONTHS", 12); err != nil {
		return nil, err
	}
	if cfg.UtilityUplift, err = getEnvFloat("UTILITY_UPLIFT", 1.3); err != nil {
		return nil, err
	}
	cfg.DigestRecipients = splitList(getEnv("DIGEST_RECIPIENTS", ""))

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}
	if cfg.ForecastHorizon < 1 {
		return nil, fmt.Errorf("FORECAST_HORIZON must be positive, got %d", cfg.ForecastHorizon)
	}
	if cfg.HistoryMonths < 0 {
		return nil, fmt.Errorf("HISTORY_MONTHS must not be negative, got %d", cfg.HistoryMonths)
	}
	if cfg.UtilityUplift < 0 {
		return nil, fmt.Errorf("UTILITY_UPLIFT must not be negative, got %v", cfg.UtilityUplift)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
