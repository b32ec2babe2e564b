// Package helpchat exposes the stateless in-app help assistant.
package helpchat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

const MaxMessageLength = 2000

var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrMessageTooLong = errors.New("message is too long")
)

// Replier answers a single help message.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type Handler struct {
	replier Replier
}

func NewHandler(replier Replier) *Handler {
	return &Handler{replier: replier}
}

func validate(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return message, nil
}

func (h *Handler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	message, err := validate(req.Message)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if h.replier == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: ai.UserMessage(ai.ErrNotConfigured),
		})
	}

	reply, err := h.replier.Reply(c.UserContext(), message)
	if err != nil {
		slog.Warn("help chat failed", "kind", ai.Kind(err), "error", err)
		switch {
		case errors.Is(err, ai.ErrRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: ai.UserMessage(err),
			})
		case errors.Is(err, ai.ErrQuotaExceeded):
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Error: true, Message: ai.UserMessage(err),
			})
		case errors.Is(err, ai.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: ai.UserMessage(err),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: ai.UserMessage(err),
			})
		}
	}

	return c.JSON(ChatResponse{Reply: reply})
}

// Plugin mounts POST /help/chat on the public API group.
type Plugin struct {
	replier Replier
}

func New(replier Replier) *Plugin {
	return &Plugin{replier: replier}
}

func (p *Plugin) ID() string { return "helpchat" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {}

func (p *Plugin) RegisterPublicRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.replier)

	// Each call costs gateway credits: 10 req/min per IP.
	help := router.Group("/help")
	help.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	help.Post("/chat", handler.Chat)
}
