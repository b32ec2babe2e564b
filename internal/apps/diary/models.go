package diary

import (
	"github.com/ahmetcoskunkizilkaya/auranote/internal/emotion"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/wellbeing"
)

type CreateEntryRequest struct {
	Content string `json:"content"`
}

type CreateEntryResponse struct {
	Entry           *models.DiaryEntry `json:"entry"`
	AnalysisError   string             `json:"analysis_error,omitempty"`
	AnalysisMessage string             `json:"analysis_message,omitempty"`
}

type EntryListResponse struct {
	Entries        []models.DiaryEntry `json:"entries"`
	Total          int                 `json:"total"`
	WellbeingAlert bool                `json:"wellbeing_alert"`
}

type DashboardResponse struct {
	Stats     emotion.Dashboard  `json:"stats"`
	Wellbeing wellbeing.Advisory `json:"wellbeing"`
}
