package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/session"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	dayLayout     = "2006-01-02"
	displayDay    = "02/01/2006"
	displayMinute = "02/01/2006 15:04"
)

var (
	ErrValidation    = errors.New("invalid summary request")
	ErrMissingFields = fmt.Errorf("%w: period, start_date and end_date are required", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: dates must use YYYY-MM-DD", ErrValidation)
	ErrInvertedRange = fmt.Errorf("%w: start_date is after end_date", ErrValidation)
	ErrInvalidPeriod = fmt.Errorf("%w: unknown period", ErrValidation)
	ErrInvalidEmail  = fmt.Errorf("%w: additional_email is not an email address", ErrValidation)
	ErrNoEntries     = fmt.Errorf("%w: no entries in the selected range", ErrValidation)
)

// Periods lists the accepted period labels in their canonical spelling.
var Periods = []string{"Diário", "Semanal", "Quinzenal", "Mensal", "Trimestral", "Anual", "Personalizado"}

// Narrator writes the prose report for a range of entries.
type Narrator interface {
	Summarize(ctx context.Context, req ai.NarrativeRequest) (string, error)
}

// Notifier hands a payload to the automation endpoint without blocking.
type Notifier interface {
	Send(payload interface{})
	Enabled() bool
}

type SummaryService struct {
	db       *gorm.DB
	store    entrystore.Store
	narrator Narrator
	notifier Notifier
	loc      *time.Location
}

func NewSummaryService(db *gorm.DB, store entrystore.Store, narrator Narrator, notifier Notifier, loc *time.Location) *SummaryService {
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryService{db: db, store: store, narrator: narrator, notifier: notifier, loc: loc}
}

func canonicalPeriod(period string) (string, error) {
	period = strings.TrimSpace(period)
	for _, p := range Periods {
		if strings.EqualFold(p, period) {
			return p, nil
		}
	}
	return "", ErrInvalidPeriod
}

// dayRange turns two calendar days into [start of first day, end of last day]
// in the service location.
func (s *SummaryService) dayRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dayLayout, strings.TrimSpace(startDate), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err := time.ParseInLocation(dayLayout, strings.TrimSpace(endDate), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvertedRange
	}

	endOfDay := time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, s.loc).Add(-time.Nanosecond)
	return start, endOfDay, nil
}

// FormatEntries renders entries the way the report and the webhook show them.
func (s *SummaryService) FormatEntries(entries []models.DiaryEntry) []ai.NarrativeEntry {
	out := make([]ai.NarrativeEntry, 0, len(entries))
	for _, e := range entries {
		var summary string
		if e.EmotionSummary != nil {
			summary = *e.EmotionSummary
		}
		out = append(out, ai.NarrativeEntry{
			Date:           e.CreatedAt.In(s.loc).Format(displayMinute),
			Content:        e.Content,
			Tags:           strings.Join(e.Tags(), ", "),
			EmotionSummary: summary,
		})
	}
	return out
}

// Request validates req, snapshots the user's entries in the range, stores
// the Summary and queues the webhook. The webhook outcome is not awaited.
func (s *SummaryService) Request(ctx context.Context, userID uuid.UUID, email string, req CreateSummaryRequest) (*models.Summary, int, error) {
	if strings.TrimSpace(req.Period) == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return nil, 0, ErrMissingFields
	}

	period, err := canonicalPeriod(req.Period)
	if err != nil {
		return nil, 0, err
	}

	start, end, err := s.dayRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, 0, err
	}

	additional := strings.TrimSpace(req.AdditionalEmail)
	if additional != "" && !strings.Contains(additional, "@") {
		return nil, 0, ErrInvalidEmail
	}

	entries, err := s.store.ListEntriesBetween(ctx, userID, start, end)
	if err != nil {
		return nil, 0, err
	}
	formatted := s.FormatEntries(entries)

	snapshot, err := json.Marshal(formatted)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode entries: %w", err)
	}

	summary := models.Summary{
		UserID:      userID,
		Email:       email,
		Period:      period,
		StartDate:   start.UTC(),
		EndDate:     end.UTC(),
		EntriesData: datatypes.JSON(snapshot),
	}
	if additional != "" {
		summary.AdditionalEmail = &additional
	}

	if err := s.db.WithContext(ctx).Create(&summary).Error; err != nil {
		slog.Error("failed to save summary", "user_id", userID.String(), "action", "create_summary", "error", err)
		return nil, 0, fmt.Errorf("%w: %v", entrystore.ErrStoreUnavailable, err)
	}

	if s.notifier != nil && s.notifier.Enabled() {
		s.notifier.Send(WebhookPayload{
			UserEmail:       email,
			AdditionalEmail: additional,
			Period:          period,
			StartDate:       start.Format(displayDay),
			EndDate:         end.Format(displayDay),
			EntryCount:      len(formatted),
			Entries:         formatted,
		})
	}

	return &summary, len(formatted), nil
}

// List returns the user's saved summaries, newest first.
func (s *SummaryService) List(ctx context.Context, userID uuid.UUID) ([]models.Summary, error) {
	summaries := []models.Summary{}
	err := s.db.WithContext(ctx).Scopes(session.ForUser(userID)).
		Order("created_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entrystore.ErrStoreUnavailable, err)
	}
	return summaries, nil
}

// Narrative asks the gateway for an HTML report over the range.
func (s *SummaryService) Narrative(ctx context.Context, userID uuid.UUID, req NarrativeRequest) (string, int, error) {
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return "", 0, ErrMissingFields
	}

	start, end, err := s.dayRange(req.StartDate, req.EndDate)
	if err != nil {
		return "", 0, err
	}

	entries, err := s.store.ListEntriesBetween(ctx, userID, start, end)
	if err != nil {
		return "", 0, err
	}
	if len(entries) == 0 {
		return "", 0, ErrNoEntries
	}
	if s.narrator == nil {
		return "", 0, ai.ErrNotConfigured
	}

	text, err := s.narrator.Summarize(ctx, ai.NarrativeRequest{
		Entries:   s.FormatEntries(entries),
		StartDate: start.Format(displayDay),
		EndDate:   end.Format(displayDay),
	})
	if err != nil {
		slog.Warn("narrative summary failed", "user_id", userID.String(), "kind", ai.Kind(err), "error", err)
		return "", 0, err
	}
	return text, len(entries), nil
}
