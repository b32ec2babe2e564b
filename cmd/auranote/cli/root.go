package cli

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps/diary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/database"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/entrystore"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/vocabulary"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCmd builds the command tree. Configuration comes from the same
// environment variables as the server.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "auranote",
		Short: "Auranote operator tools",
		Long: `Operator tools for the Aura Note backend.

Reads the server's environment (DB_DRIVER, DB_*, SQLITE_PATH,
DISPLAY_TIMEZONE, VOCABULARY_PATH) and works on the same database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDashboardCmd())
	root.AddCommand(newWellbeingCmd())
	root.AddCommand(newPurgeCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// env is what every data command needs.
type env struct {
	cfg     *config.Config
	db      *gorm.DB
	service *diary.DiaryService
	loc     *time.Location
}

func (e *env) Close() {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func openDB() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	return cfg, db, nil
}

// openEnv wires a diary service without a tagger; CLI commands never
// create entries.
func openEnv() (*env, error) {
	cfg, db, err := openDB()
	if err != nil {
		return nil, err
	}

	vocab, err := vocabulary.Load(cfg.VocabularyPath)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}

	loc := cfg.Location()
	return &env{
		cfg:     cfg,
		db:      db,
		service: diary.NewDiaryService(entrystore.NewGormStore(db), nil, vocab, loc),
		loc:     loc,
	}, nil
}

func parseUser(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--user is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user %q: %w", raw, err)
	}
	return id, nil
}
