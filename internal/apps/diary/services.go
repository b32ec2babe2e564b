package diary

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/emotion"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/vocabulary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/wellbeing"
	"github.com/google/uuid"
)

var ErrEmptyContent = errors.New("entry content is required")

// Tagger produces the emotion summary and tags for an entry.
type Tagger interface {
	TagEmotions(ctx context.Context, content string) (ai.Analysis, error)
}

// Stage tracks how far a create request got.
type Stage string

const (
	StageReceived   Stage = "received"
	StageAnalysing  Stage = "analysing"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// CreateResult is the outcome of CreateEntry. AnalysisErr is set when tagging
// failed and the entry was stored untagged.
type CreateResult struct {
	Entry       *models.DiaryEntry
	Stage       Stage
	AnalysisErr error
}

type DiaryService struct {
	store   entrystore.Store
	tagger  Tagger
	monitor *wellbeing.Monitor
	vocab   *vocabulary.Vocabulary
	loc     *time.Location
	now     func() time.Time
}

// NewDiaryService wires the service. tagger may be nil, in which case entries
// are stored without analysis.
func NewDiaryService(store entrystore.Store, tagger Tagger, vocab *vocabulary.Vocabulary, loc *time.Location) *DiaryService {
	if vocab == nil {
		vocab = vocabulary.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DiaryService{
		store:   store,
		tagger:  tagger,
		monitor: wellbeing.NewMonitor(vocab.NegativeTerms()),
		vocab:   vocab,
		loc:     loc,
		now:     time.Now,
	}
}

// CreateEntry tags content and stores it. A tagging failure never prevents
// the entry from being saved; it is reported through CreateResult.AnalysisErr.
func (s *DiaryService) CreateEntry(ctx context.Context, userID uuid.UUID, content string) (CreateResult, error) {
	result := CreateResult{Stage: StageReceived}

	content = strings.TrimSpace(content)
	if content == "" {
		result.Stage = StageFailed
		return result, ErrEmptyContent
	}

	var summary *string
	tags := []string{}

	result.Stage = StageAnalysing
	if s.tagger == nil {
		result.AnalysisErr = ai.ErrNotConfigured
	} else {
		start := time.Now()
		analysis, err := s.tagger.TagEmotions(ctx, content)
		if err != nil {
			result.AnalysisErr = err
			slog.Warn("emotion tagging failed, saving untagged entry",
				"user_id", userID.String(), "kind", ai.Kind(err), "error", err,
				"latency_ms", time.Since(start).Milliseconds())
		} else {
			if analysis.Summary != "" {
				summary = &analysis.Summary
			}
			if analysis.Tags != nil {
				tags = analysis.Tags
			}
		}
	}

	result.Stage = StagePersisting
	entry, err := s.store.CreateEntry(ctx, userID, content, summary, tags)
	if err != nil {
		result.Stage = StageFailed
		slog.Error("failed to store diary entry", "user_id", userID.String(), "action", "create_entry", "error", err)
		return result, err
	}

	result.Entry = entry
	result.Stage = StageDone
	return result, nil
}

// ListEntries returns entries newest first with the current alert flag.
func (s *DiaryService) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.DiaryEntry, bool, error) {
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return entries, s.monitor.Check(entries), nil
}

// Dashboard aggregates the user's entries relative to at. When the store
// fails the empty dashboard is returned together with the error.
func (s *DiaryService) Dashboard(ctx context.Context, userID uuid.UUID, at time.Time) (emotion.Dashboard, wellbeing.Advisory, error) {
	if at.IsZero() {
		at = s.now()
	}
	at = at.In(s.loc)
	opts := emotion.Options{Vocabulary: s.vocab}

	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return emotion.Empty(at, opts), wellbeing.Advisory{}, err
	}

	return emotion.BuildDashboard(entries, at, opts), s.monitor.Evaluate(entries), nil
}

func (s *DiaryService) Wellbeing(ctx context.Context, userID uuid.UUID) (wellbeing.Advisory, error) {
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return wellbeing.Advisory{}, err
	}
	return s.monitor.Evaluate(entries), nil
}

func (s *DiaryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.store.DeleteEntry(ctx, userID, entryID)
}

func (s *DiaryService) DeleteAllEntries(ctx context.Context, userID uuid.UUID) error {
	return s.store.DeleteAllEntries(ctx, userID)
}
