package session

import (
	"context"
	"time"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/repository"
)

// DBStorage keeps sessions in the relational store. Expired rows are
// treated as absent and removed when read. Rows never read again are left
// to the session sweep job.
type DBStorage struct {
	repo repository.SessionRepository
	now  func() time.Time
}

func NewDBStorage(repo repository.SessionRepository) *DBStorage {
	return &DBStorage{repo: repo, now: time.Now}
}

func (s *DBStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx := context.Background()

	row, err := s.repo.Find(ctx, key)
	if err != nil || row == nil {
		return nil, err
	}
	if row.ExpiresAt != 0 && row.ExpiresAt <= s.now().Unix() {
		return nil, s.repo.Delete(ctx, key)
	}
	return row.Data, nil
}

func (s *DBStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	var expiresAt int64
	if exp > 0 {
		expiresAt = s.now().Add(exp).Unix()
	}
	return s.repo.Upsert(context.Background(), &domain.Session{
		ID:        key,
		Data:      val,
		ExpiresAt: expiresAt,
	})
}

func (s *DBStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.repo.Delete(context.Background(), key)
}

func (s *DBStorage) Reset() error {
	return s.repo.DeleteAll(context.Background())
}

// Close is a no-op; the database handle belongs to the service context.
func (s *DBStorage) Close() error {
	return nil
}
