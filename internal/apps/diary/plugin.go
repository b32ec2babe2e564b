package diary

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/vocabulary"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DiaryPlugin struct {
	tagger Tagger
	vocab  *vocabulary.Vocabulary
	loc    *time.Location
}

func New(tagger Tagger, vocab *vocabulary.Vocabulary, loc *time.Location) *DiaryPlugin {
	return &DiaryPlugin{tagger: tagger, vocab: vocab, loc: loc}
}

func (p *DiaryPlugin) ID() string { return "diary" }

func (p *DiaryPlugin) Models() []interface{} {
	return []interface{}{
		&models.DiaryEntry{},
	}
}

func (p *DiaryPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewDiaryService(entrystore.NewGormStore(db), p.tagger, p.vocab, p.loc)
	handler := NewDiaryHandler(svc)

	router.Post("/diary/entries", handler.Create)
	router.Get("/diary/entries", handler.List)
	router.Delete("/diary/entries", handler.DeleteAll)
	router.Delete("/diary/entries/:id", handler.Delete)
	router.Get("/diary/dashboard", handler.Dashboard)
	router.Get("/diary/wellbeing", handler.Wellbeing)
}
