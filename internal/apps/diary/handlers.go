package diary

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/dto"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DiaryHandler struct {
	service *DiaryService
}

func NewDiaryHandler(service *DiaryService) *DiaryHandler {
	return &DiaryHandler{service: service}
}

func storeError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, entrystore.ErrStoreUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func (h *DiaryHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.service.CreateEntry(c.UserContext(), userID, req.Content)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storeError(c, err, "Failed to save diary entry")
	}

	return c.Status(fiber.StatusCreated).JSON(CreateEntryResponse{
		Entry:           result.Entry,
		AnalysisError:   ai.Kind(result.AnalysisErr),
		AnalysisMessage: ai.UserMessage(result.AnalysisErr),
	})
}

func (h *DiaryHandler) List(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entries, alert, err := h.service.ListEntries(c.UserContext(), userID)
	if err != nil {
		return storeError(c, err, "Failed to fetch diary entries")
	}

	return c.JSON(EntryListResponse{
		Entries:        entries,
		Total:          len(entries),
		WellbeingAlert: alert,
	})
}

func (h *DiaryHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry ID",
		})
	}

	if err := h.service.DeleteEntry(c.UserContext(), userID, entryID); err != nil {
		if errors.Is(err, entrystore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storeError(c, err, "Failed to delete diary entry")
	}

	return c.JSON(fiber.Map{"message": "Entry deleted"})
}

func (h *DiaryHandler) DeleteAll(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.service.DeleteAllEntries(c.UserContext(), userID); err != nil {
		return storeError(c, err, "Failed to delete diary entries")
	}

	return c.JSON(fiber.Map{"message": "All entries deleted"})
}

func (h *DiaryHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var at time.Time
	if raw := c.Query("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "at must be an RFC3339 timestamp",
			})
		}
	}

	stats, advisory, err := h.service.Dashboard(c.UserContext(), userID, at)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, entrystore.ErrStoreUnavailable) {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load diary entries",
			"stats":   stats,
		})
	}

	return c.JSON(DashboardResponse{Stats: stats, Wellbeing: advisory})
}

func (h *DiaryHandler) Wellbeing(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	advisory, err := h.service.Wellbeing(c.UserContext(), userID)
	if err != nil {
		return storeError(c, err, "Failed to load diary entries")
	}

	return c.JSON(advisory)
}
