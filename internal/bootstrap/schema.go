package bootstrap

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// same id across every instance so concurrent boots serialize
const bootstrapLockID int64 = 20260222

// EnsureSchema creates or updates every table the service owns.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(domain.AllModels()...)
}

// Run prepares the store for serving: schema first, then seed data. On
// Postgres both steps run under an advisory lock held on one connection.
func Run(ctx context.Context, db *gorm.DB, auth helper.Auth, seed Seed) (SeedResult, error) {
	var result SeedResult

	err := withBootstrapLock(ctx, db, func(conn *gorm.DB) error {
		if err := EnsureSchema(conn); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("migration successful")

		r, err := EnsureSeedData(ctx, conn, auth, seed)
		if err != nil {
			return fmt.Errorf("ensure seed data: %w", err)
		}
		result = r
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logger.Info("bootstrap complete",
		zap.Bool("admin_created", result.AdminCreated),
		zap.Bool("account_details_created", result.AccountDetailsCreated),
	)
	return result, nil
}

func withBootstrapLock(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	if db.Dialector.Name() != "postgres" {
		return fn(db.WithContext(ctx))
	}

	// session-level lock: lock, work and unlock must share a connection
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return holdAdvisoryLock(conn, bootstrapLockID, fn)
	})
}

// holdAdvisoryLock runs fn while holding the advisory lock id on conn. The
// unlock ignores cancellation of conn's context; a pooled connection must
// not go back to the pool still holding the lock.
func holdAdvisoryLock(conn *gorm.DB, id int64, fn func(conn *gorm.DB) error) error {
	if err := conn.Exec("SELECT pg_advisory_lock(?)", id).Error; err != nil {
		return fmt.Errorf("bootstrap lock error: %w", err)
	}
	defer func() {
		unlockCtx := context.Background()
		if conn.Statement.Context != nil {
			unlockCtx = context.WithoutCancel(conn.Statement.Context)
		}
		if err := conn.WithContext(unlockCtx).Exec("SELECT pg_advisory_unlock(?)", id).Error; err != nil {
			logger.Error("bootstrap unlock error", zap.Int64("lock_id", id), zap.Error(err))
		}
	}()
	return fn(conn)
}
