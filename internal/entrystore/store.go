// Package entrystore persists diary entries per user.
package entrystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/session"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrStoreUnavailable = errors.New("entry store unavailable")
	ErrNotFound         = errors.New("diary entry not found")
)

// Store is what the diary and summary flows need from persistence.
type Store interface {
	ListEntries(ctx context.Context, userID uuid.UUID) ([]models.DiaryEntry, error)
	ListEntriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.DiaryEntry, error)
	CreateEntry(ctx context.Context, userID uuid.UUID, content string, summary *string, tags []string) (*models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	DeleteAllEntries(ctx context.Context, userID uuid.UUID) error
}

type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (s *GormStore) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.DiaryEntry, error) {
	entries := []models.DiaryEntry{}
	err := s.db.WithContext(ctx).Scopes(session.ForUser(userID)).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return entries, nil
}

// ListEntriesBetween returns entries with from <= created_at <= to, newest first.
func (s *GormStore) ListEntriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.DiaryEntry, error) {
	entries := []models.DiaryEntry{}
	err := s.db.WithContext(ctx).Scopes(session.ForUser(userID)).
		Where("created_at >= ? AND created_at <= ?", from.UTC(), to.UTC()).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return entries, nil
}

func (s *GormStore) CreateEntry(ctx context.Context, userID uuid.UUID, content string, summary *string, tags []string) (*models.DiaryEntry, error) {
	if tags == nil {
		tags = []string{}
	}
	entry := models.DiaryEntry{
		UserID:         userID,
		Content:        content,
		EmotionSummary: summary,
		EmotionTags:    datatypes.JSONSlice[string](tags),
		CreatedAt:      s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, unavailable(err)
	}
	return &entry, nil
}

// DeleteEntry removes one entry. A missing entry, or one owned by another
// user, is ErrNotFound.
func (s *GormStore) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).Scopes(session.ForUser(userID)).
		Where("id = ?", entryID).
		Delete(&models.DiaryEntry{})
	if result.Error != nil {
		return unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteAllEntries(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Scopes(session.ForUser(userID)).
		Delete(&models.DiaryEntry{}).Error
	if err != nil {
		return unavailable(err)
	}
	return nil
}
