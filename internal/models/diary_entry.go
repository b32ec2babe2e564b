package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DiaryEntry is one diary submission plus the emotion metadata attached by
// the tagging call. Entries are never updated after insert.
type DiaryEntry struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Content        string                      `gorm:"type:text;not null" json:"content"`
	EmotionSummary *string                     `gorm:"type:text" json:"emotion_summary"`
	EmotionTags    datatypes.JSONSlice[string] `json:"emotion_tags"`
	CreatedAt      time.Time                   `gorm:"not null;index" json:"created_at"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}

func (e *DiaryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EmotionTags == nil {
		e.EmotionTags = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (e *DiaryEntry) AfterFind(tx *gorm.DB) error {
	if e.EmotionTags == nil {
		e.EmotionTags = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Tags returns the raw tag list.
func (e DiaryEntry) Tags() []string {
	return []string(e.EmotionTags)
}
