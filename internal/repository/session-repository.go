package repository

import (
	"context"
	"errors"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	// Find returns nil when the id is unknown.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Upsert(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	// DeleteExpired removes rows whose expiry is at or before now (unix seconds).
	DeleteExpired(ctx context.Context, now int64) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Upsert(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
		}).
		Create(s).Error
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Session{}).Error
}

func (r *sessionRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <> 0 AND expires_at <= ?", now).
		Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}
