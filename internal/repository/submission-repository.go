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

type SubmissionRepository interface {
	// Create returns the driver error untouched so the legacy importer can
	// tell duplicate ids apart.
	Create(ctx context.Context, sub *domain.Submission) error
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Submission, error)

	// Confirm moves a pending submission to confirmed. It reports false when
	// no pending row matched.
	Confirm(ctx context.Context, id string) (bool, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	if sub == nil {
		return errors.New("nil submission")
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

// FindByID returns gorm.ErrRecordNotFound for unknown ids.
func (r *submissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	var sub domain.Submission

	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&sub).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("find submission error", zap.String("submission_id", id), zap.Error(err))
		}
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Submission{}).Count(&n).Error; err != nil {
		logger.Error("count submissions error", zap.Error(err))
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func (r *submissionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	var subs []domain.Submission

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		logger.Error("list submissions error", zap.Error(err))
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

func (r *submissionRepository) Confirm(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("id = ? AND status = ?", id, domain.SubmissionStatusPending).
		Update("status", domain.SubmissionStatusConfirmed)
	if res.Error != nil {
		logger.Error("confirm submission error", zap.String("submission_id", id), zap.Error(res.Error))
		return false, fmt.Errorf("confirm submission: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
