package diary

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type memStore struct {
	mu      sync.Mutex
	entries []models.DiaryEntry
	clock   time.Time
	failing bool
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)}
}

func (m *memStore) seed(userID uuid.UUID, at time.Time, tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, models.DiaryEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Content:     "seeded",
		EmotionTags: datatypes.JSONSlice[string](append([]string{}, tags...)),
		CreatedAt:   at,
	})
}

func (m *memStore) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.DiaryEntry, error) {
	return m.ListEntriesBetween(ctx, userID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (m *memStore) ListEntriesBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]models.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, entrystore.ErrStoreUnavailable
	}
	out := []models.DiaryEntry{}
	for _, e := range m.entries {
		if e.UserID == userID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CreateEntry(_ context.Context, userID uuid.UUID, content string, summary *string, tags []string) (*models.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, entrystore.ErrStoreUnavailable
	}
	m.clock = m.clock.Add(time.Minute)
	e := models.DiaryEntry{
		ID:             uuid.New(),
		UserID:         userID,
		Content:        content,
		EmotionSummary: summary,
		EmotionTags:    datatypes.JSONSlice[string](tags),
		CreatedAt:      m.clock,
	}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *memStore) DeleteEntry(_ context.Context, userID, entryID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return entrystore.ErrStoreUnavailable
	}
	for i, e := range m.entries {
		if e.ID == entryID && e.UserID == userID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return entrystore.ErrNotFound
}

func (m *memStore) DeleteAllEntries(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return entrystore.ErrStoreUnavailable
	}
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

type stubTagger struct {
	analysis ai.Analysis
	err      error
	calls    int
}

func (s *stubTagger) TagEmotions(_ context.Context, _ string) (ai.Analysis, error) {
	s.calls++
	return s.analysis, s.err
}
