package summary

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UTC+1 all year, so range tests do not depend on the tz database.
var testLoc = time.FixedZone("UTC+1", 3600)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DiaryEntry{}, &models.Summary{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestService(t *testing.T, narrator Narrator, notifier Notifier) (*SummaryService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewSummaryService(db, entrystore.NewGormStore(db), narrator, notifier, testLoc), db
}

func seedEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, at time.Time, content string, summary *string, tags ...string) {
	t.Helper()
	entry := models.DiaryEntry{
		UserID:         userID,
		Content:        content,
		EmotionSummary: summary,
		EmotionTags:    datatypes.JSONSlice[string](append([]string{}, tags...)),
		CreatedAt:      at.UTC(),
	}
	require.NoError(t, db.Create(&entry).Error)
}

type recordingNotifier struct {
	mu       sync.Mutex
	enabled  bool
	payloads []interface{}
}

func (n *recordingNotifier) Send(payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
}

func (n *recordingNotifier) Enabled() bool { return n.enabled }

func (n *recordingNotifier) sent() []interface{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]interface{}{}, n.payloads...)
}

type stubNarrator struct {
	text string
	err  error
	got  []ai.NarrativeRequest
}

func (s *stubNarrator) Summarize(_ context.Context, req ai.NarrativeRequest) (string, error) {
	s.got = append(s.got, req)
	return s.text, s.err
}

func strPtr(s string) *string { return &s }
