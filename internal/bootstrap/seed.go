package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Seed struct {
	AdminEmail    string
	AdminPassword string
}

type SeedResult struct {
	AdminCreated          bool
	AccountDetailsCreated bool
}

// EnsureSeedData inserts the admin and the demo account details, each only
// when its table is empty.
func EnsureSeedData(ctx context.Context, db *gorm.DB, auth helper.Auth, seed Seed) (SeedResult, error) {
	var result SeedResult

	created, err := seedAdmin(ctx, repository.NewAdminRepository(db), auth, seed)
	if err != nil {
		return result, err
	}
	result.AdminCreated = created

	created, err = seedAccountDetails(ctx, repository.NewAccountDetailsRepository(db))
	if err != nil {
		return result, err
	}
	result.AccountDetailsCreated = created

	return result, nil
}

func seedAdmin(ctx context.Context, repo repository.AdminRepository, auth helper.Auth, seed Seed) (bool, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	email := utils.NormalizeEmail(seed.AdminEmail)
	if email == "" || seed.AdminPassword == "" {
		return false, errors.New("admin seed credentials are empty")
	}

	hash, err := auth.HashPassword(seed.AdminPassword)
	if err != nil {
		return false, err
	}

	err = repo.Create(ctx, &domain.Admin{Email: email, PasswordHash: hash})
	if helper.IsDuplicateKey(err) {
		// another instance won the race
		logger.Warn("admin already seeded concurrently", zap.String("email", email))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	logger.Info("seeded admin", zap.String("email", email))
	return true, nil
}

func seedAccountDetails(ctx context.Context, repo repository.AccountDetailsRepository) (bool, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	bank, err := json.Marshal(domain.DemoBankInfo())
	if err != nil {
		return false, err
	}
	crypto, err := json.Marshal(domain.DemoCryptoAddresses())
	if err != nil {
		return false, err
	}

	if err := repo.Create(ctx, &domain.AccountDetails{
		Bank:   datatypes.JSON(bank),
		Crypto: datatypes.JSON(crypto),
	}); err != nil {
		return false, err
	}

	logger.Info("seeded demo account details")
	return true, nil
}
