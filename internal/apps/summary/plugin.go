package summary

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SummaryPlugin struct {
	narrator Narrator
	notifier Notifier
	loc      *time.Location
}

func New(narrator Narrator, notifier Notifier, loc *time.Location) *SummaryPlugin {
	return &SummaryPlugin{narrator: narrator, notifier: notifier, loc: loc}
}

func (p *SummaryPlugin) ID() string { return "summary" }

func (p *SummaryPlugin) Models() []interface{} {
	return []interface{}{
		&models.DiaryEntry{},
		&models.Summary{},
	}
}

func (p *SummaryPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewSummaryService(db, entrystore.NewGormStore(db), p.narrator, p.notifier, p.loc)
	handler := NewSummaryHandler(svc)

	router.Post("/summaries", handler.Create)
	router.Get("/summaries", handler.List)
	router.Post("/summaries/narrative", handler.Narrative)
}
