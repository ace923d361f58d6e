package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AccountDetailsRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, details *domain.AccountDetails) error

	// Latest returns the current record, or nil when the table is empty.
	Latest(ctx context.Context) (*domain.AccountDetails, error)
	// SaveCurrent updates the current record in place, inserting one if
	// none exists.
	SaveCurrent(ctx context.Context, bank, crypto datatypes.JSON) error
}

type accountDetailsRepository struct {
	db *gorm.DB
}

func NewAccountDetailsRepository(db *gorm.DB) AccountDetailsRepository {
	return &accountDetailsRepository{db: db}
}

func (r *accountDetailsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.AccountDetails{}).Count(&n).Error; err != nil {
		logger.Error("count account details error", zap.Error(err))
		return 0, fmt.Errorf("count account details: %w", err)
	}
	return n, nil
}

func (r *accountDetailsRepository) Create(ctx context.Context, details *domain.AccountDetails) error {
	if details == nil {
		return errors.New("nil account details")
	}
	if err := r.db.WithContext(ctx).Create(details).Error; err != nil {
		logger.Error("create account details error", zap.Error(err))
		return fmt.Errorf("create account details: %w", err)
	}
	return nil
}

func (r *accountDetailsRepository) Latest(ctx context.Context) (*domain.AccountDetails, error) {
	return latestAccountDetails(r.db.WithContext(ctx))
}

func latestAccountDetails(db *gorm.DB) (*domain.AccountDetails, error) {
	var details domain.AccountDetails

	err := db.Order("id DESC").Limit(1).Take(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error("find latest account details error", zap.Error(err))
		return nil, fmt.Errorf("find latest account details: %w", err)
	}
	return &details, nil
}

func (r *accountDetailsRepository) SaveCurrent(ctx context.Context, bank, crypto datatypes.JSON) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := latestAccountDetails(tx)
		if err != nil {
			return err
		}

		if current == nil {
			if err := tx.Create(&domain.AccountDetails{Bank: bank, Crypto: crypto}).Error; err != nil {
				logger.Error("insert account details error", zap.Error(err))
				return fmt.Errorf("insert account details: %w", err)
			}
			return nil
		}

		if err := tx.Model(current).Updates(map[string]any{
			"bank":   bank,
			"crypto": crypto,
		}).Error; err != nil {
			logger.Error("update account details error", zap.Uint("id", current.ID), zap.Error(err))
			return fmt.Errorf("update account details: %w", err)
		}
		return nil
	})
}
