package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/database"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	aiConfigured   bool
	webhookEnabled bool
}

func NewHealthHandler(aiConfigured, webhookEnabled bool) *HealthHandler {
	return &HealthHandler{aiConfigured: aiConfigured, webhookEnabled: webhookEnabled}
}

func status(ok bool) string {
	if ok {
		return "configured"
	}
	return "disabled"
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if database.DB == nil {
		dbStatus = "unhealthy: not connected"
	} else if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		AI:        status(h.aiConfigured),
		Webhook:   status(h.webhookEnabled),
	})
}
