package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("DISPLAY_TIMEZONE", "")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "auranote", cfg.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AIModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, "Europe/Lisbon", cfg.DisplayTimezone)
	assert.Equal(t, 30, cfg.LogRetentionDays)
	assert.False(t, cfg.AIStructuredOutput)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("WEBHOOK_TIMEOUT", "not-a-duration")
	t.Setenv("AI_STRUCTURED_OUTPUT", "true")
	t.Setenv("LOG_RETENTION_DAYS", "-4")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.True(t, cfg.AIStructuredOutput)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBDriver: "postgres"}
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg.JWTSecret = "secret"
	assert.Error(t, cfg.Validate())

	cfg.DBPassword = "pw"
	assert.NoError(t, cfg.Validate())

	cfg = &Config{DBDriver: "sqlite", JWTSecret: "secret"}
	assert.NoError(t, cfg.Validate())

	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{DisplayTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}
