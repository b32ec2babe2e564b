package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// AI gateway
	AIGatewayURL       string
	AIGatewayKey       string
	AIModel            string
	AITimeout          time.Duration
	AIStructuredOutput bool

	// Summary automation
	SummaryWebhookURL string
	WebhookTimeout    time.Duration

	// Presentation
	DisplayTimezone string
	VocabularyPath  string

	// Logging
	SentryDSN        string
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "auranote"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "auranote.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		AIGatewayURL:       getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/"),
		AIGatewayKey:       getEnv("AI_GATEWAY_KEY", ""),
		AIModel:            getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		AITimeout:          parseDuration(getEnv("AI_TIMEOUT", "30s"), 30*time.Second),
		AIStructuredOutput: parseBool(getEnv("AI_STRUCTURED_OUTPUT", "false")),

		SummaryWebhookURL: getEnv("SUMMARY_WEBHOOK_URL", ""),
		WebhookTimeout:    parseDuration(getEnv("WEBHOOK_TIMEOUT", "10s"), 10*time.Second),

		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Europe/Lisbon"),
		VocabularyPath:  getEnv("VOCABULARY_PATH", ""),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return c.ValidateDatabase()
}

// ValidateDatabase checks only the database settings; the operator CLI
// needs nothing else.
func (c *Config) ValidateDatabase() error {
	switch c.DBDriver {
	case "postgres":
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD is required for postgres")
		}
	case "sqlite":
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Location is the display timezone, falling back to UTC when unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
