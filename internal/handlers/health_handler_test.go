package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthWithoutDatabase(t *testing.T) {
	app := fiber.New()
	app.Get("/api/health", NewHealthHandler(true, false).Check)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "configured", body.AI)
	assert.Equal(t, "disabled", body.Webhook)
	assert.Contains(t, body.DB, "unhealthy")
}
