package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/claim_service/internal/api"
	"github.com/SundayYogurt/claim_service/internal/bootstrap"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/database"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func serveCmd() *cobra.Command {
	var skipLegacy bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the store, import legacy data if empty, then serve HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// no listener before the schema and seed exist
			if _, err := bootstrap.Run(ctx, db, helper.SetupAuth(bcrypt.DefaultCost), bootstrap.Seed{
				AdminEmail:    cfg.AdminEmail,
				AdminPassword: cfg.AdminPass,
			}); err != nil {
				_ = database.Close(db)
				return fmt.Errorf("bootstrap: %w", err)
			}

			if !skipLegacy {
				stats, err := bootstrap.MigrateIfEmpty(ctx, repository.NewSubmissionRepository(db), bootstrap.LegacyFile{Path: cfg.LegacyDBPath})
				if err != nil {
					logger.Warn("legacy migration skipped", zap.Error(err))
				} else if stats.Skipped {
					logger.Debug("legacy migration not needed")
				}
			}

			app, err := api.NewApp(cfg, db)
			if err != nil {
				_ = database.Close(db)
				return err
			}
			return app.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&skipLegacy, "skip-legacy", false, "do not look for a legacy document store")
	return cmd
}
