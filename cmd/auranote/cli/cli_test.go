package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps/diary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/database"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/wellbeing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "auranote.db"))
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("VOCABULARY_PATH", "")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fakeTerminal(t *testing.T, v bool) {
	t.Helper()
	prev := isTerminal
	isTerminal = func(interface{}) bool { return v }
	t.Cleanup(func() { isTerminal = prev })
}

// seed migrates the database and writes entries for user, newest last.
func seed(t *testing.T, user uuid.UUID, tags ...[]string) {
	t.Helper()

	_, err := run(t, "", "migrate")
	require.NoError(t, err)

	db, err := database.Open(config.Load())
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	for i, set := range tags {
		require.NoError(t, db.Create(&models.DiaryEntry{
			UserID:      user,
			Content:     "entrada",
			EmotionTags: datatypes.JSONSlice[string](set),
			CreatedAt:   base.Add(time.Duration(i-len(tags)) * time.Hour),
		}).Error)
	}
}

func countEntries(t *testing.T, user uuid.UUID) int64 {
	t.Helper()
	db, err := database.Open(config.Load())
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var n int64
	require.NoError(t, db.Model(&models.DiaryEntry{}).Where("user_id = ?", user).Count(&n).Error)
	return n
}

func TestMigrate(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 5 tables")
}

func TestDashboardJSON(t *testing.T) {
	setupEnv(t)
	user := uuid.New()
	seed(t, user, []string{"Feliz", "Grato"}, []string{"feliz"})

	out, err := run(t, "", "dashboard", "--user", user.String(), "--at", "2024-05-10T12:00:00Z")
	require.NoError(t, err)

	var resp diary.DashboardResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.Stats.TotalEntries)
	assert.Equal(t, "Feliz", resp.Stats.TopEmotion)
	assert.Equal(t, 2, resp.Stats.TopEmotionCount)
	assert.Len(t, resp.Stats.LineData, 7)
	assert.False(t, resp.Wellbeing.Alert)
}

func TestDashboardTable(t *testing.T) {
	setupEnv(t)
	user := uuid.New()
	seed(t, user, []string{"Feliz", "Grato"}, []string{"feliz"})
	fakeTerminal(t, true)

	out, err := run(t, "", "dashboard", "--user", user.String(), "--at", "2024-05-10T12:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "Top emotion")
	assert.Contains(t, out, "Feliz (2)")
	assert.Contains(t, out, "10/05")
}

func TestDashboardRequiresValidUser(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "dashboard")
	assert.EqualError(t, err, "--user is required")

	_, err = run(t, "", "dashboard", "--user", "nope")
	assert.Error(t, err)
}

func TestWellbeingAlert(t *testing.T) {
	setupEnv(t)
	user := uuid.New()
	seed(t, user, []string{"preocupado"}, []string{"frustrado"}, []string{"triste"})

	out, err := run(t, "", "wellbeing", "--user", user.String())
	require.NoError(t, err)

	var advisory wellbeing.Advisory
	require.NoError(t, json.Unmarshal([]byte(out), &advisory))
	assert.True(t, advisory.Alert)
	assert.Len(t, advisory.Suggestions, 4)
}

func TestPurge(t *testing.T) {
	t.Run("refuses without --yes on a non-terminal stdin", func(t *testing.T) {
		setupEnv(t)
		user := uuid.New()
		seed(t, user, []string{"feliz"})
		fakeTerminal(t, false)

		_, err := run(t, "y\n", "purge", "--user", user.String())
		assert.Error(t, err)
		assert.Equal(t, int64(1), countEntries(t, user))
	})

	t.Run("prompt declined", func(t *testing.T) {
		setupEnv(t)
		user := uuid.New()
		seed(t, user, []string{"feliz"})
		fakeTerminal(t, true)

		out, err := run(t, "n\n", "purge", "--user", user.String())
		require.NoError(t, err)
		assert.Contains(t, out, "Aborted.")
		assert.Equal(t, int64(1), countEntries(t, user))
	})

	t.Run("prompt accepted", func(t *testing.T) {
		setupEnv(t)
		user := uuid.New()
		seed(t, user, []string{"feliz"}, []string{"calmo"})
		fakeTerminal(t, true)

		_, err := run(t, "y\n", "purge", "--user", user.String())
		require.NoError(t, err)
		assert.Zero(t, countEntries(t, user))
	})

	t.Run("--yes skips the prompt", func(t *testing.T) {
		setupEnv(t)
		user := uuid.New()
		other := uuid.New()
		seed(t, user, []string{"feliz"})
		seed(t, other, []string{"calmo"})
		fakeTerminal(t, false)

		out, err := run(t, "", "purge", "--user", user.String(), "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted all diary entries")
		assert.Zero(t, countEntries(t, user))
		assert.Equal(t, int64(1), countEntries(t, other))
	})
}
