package cli

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/database"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB()
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			}()

			all := append(database.SharedModels(), &models.DiaryEntry{}, &models.Summary{})
			if err := db.AutoMigrate(all...); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(all))
			return nil
		},
	}
}
