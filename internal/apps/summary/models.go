package summary

import (
	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
)

// Dates are calendar days, YYYY-MM-DD, read in the display timezone.
type CreateSummaryRequest struct {
	Period          string `json:"period"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	AdditionalEmail string `json:"additional_email"`
}

type CreateSummaryResponse struct {
	Summary       *models.Summary `json:"summary"`
	EntryCount    int             `json:"entry_count"`
	WebhookQueued bool            `json:"webhook_queued"`
}

type SummaryListResponse struct {
	Summaries []models.Summary `json:"summaries"`
	Total     int              `json:"total"`
}

type NarrativeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type NarrativeResponse struct {
	TextSummary string `json:"text_summary"`
	EntryCount  int    `json:"entry_count"`
}

// WebhookPayload is the body posted to the automation endpoint.
type WebhookPayload struct {
	UserEmail       string              `json:"email_utilizador"`
	AdditionalEmail string              `json:"email_adicional"`
	Period          string              `json:"periodo"`
	StartDate       string              `json:"data_inicio"`
	EndDate         string              `json:"data_fim"`
	EntryCount      int                 `json:"numero_entradas"`
	Entries         []ai.NarrativeEntry `json:"entradas"`
}
