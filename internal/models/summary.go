package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Summary records a period report that was requested and handed to the
// automation webhook.
type Summary struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Email           string         `gorm:"size:255" json:"email"`
	AdditionalEmail *string        `gorm:"size:255" json:"additional_email"`
	Period          string         `gorm:"size:50;not null" json:"period"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	EndDate         time.Time      `gorm:"not null" json:"end_date"`
	EntriesData     datatypes.JSON `json:"entries_data"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
}

func (Summary) TableName() string {
	return "summaries"
}

func (s *Summary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
