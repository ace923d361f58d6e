package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *domain.Admin) error
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id uint) (*domain.Admin, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Admin{}).Count(&n).Error; err != nil {
		logger.Error("count admins error", zap.Error(err))
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

// Create returns the driver error untouched so callers can detect a
// duplicate email.
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if admin == nil {
		return errors.New("nil admin")
	}
	return r.db.WithContext(ctx).Create(admin).Error
}

// FindByEmail returns gorm.ErrRecordNotFound when no admin has the email.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	admin := &domain.Admin{}

	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("find admin by email error", zap.Error(err))
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	admin := &domain.Admin{}

	if err := r.db.WithContext(ctx).Take(admin, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("find admin by id error", zap.Uint("admin_id", id), zap.Error(err))
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		logger.Error("update admin password error", zap.Uint("admin_id", id), zap.Error(res.Error))
		return fmt.Errorf("update admin password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
