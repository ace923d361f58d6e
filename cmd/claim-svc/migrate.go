package main

import (
	"fmt"

	"github.com/SundayYogurt/claim_service/internal/bootstrap"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/database"
	"github.com/spf13/cobra"
)

func migrateLegacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate-legacy [db.json]",
		Short: "Import submissions from the legacy JSON document store",
		Long: `Import submissions from the legacy JSON document store.

The import only runs when the submissions table is empty, so it is safe to
repeat. Records with duplicate ids or that fail to insert are reported and
skipped.

Examples:
  claim-svc migrate-legacy
  claim-svc migrate-legacy ./backup/db.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := bootstrap.EnsureSchema(db); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}

			path := cfg.LegacyDBPath
			if len(args) == 1 {
				path = args[0]
			}

			stats, err := bootstrap.MigrateIfEmpty(cmd.Context(), repository.NewSubmissionRepository(db), bootstrap.LegacyFile{Path: path})
			if err != nil {
				return err
			}
			if stats.Skipped {
				fmt.Println("submissions already present - nothing imported")
				return nil
			}

			fmt.Printf("Migration complete in %s\n", stats.Duration())
			fmt.Printf("  Total:      %d\n", stats.Total)
			fmt.Printf("  Migrated:   %d\n", stats.Migrated)
			fmt.Printf("  Duplicates: %d\n", stats.Duplicates)
			fmt.Printf("  Failed:     %d\n", stats.Failed)
			for _, e := range stats.Errors {
				fmt.Printf("    %s\n", e)
			}
			return nil
		},
	}
	return cmd
}
