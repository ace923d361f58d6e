package task

import (
	"context"
	"time"

	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// SessionSweepJob deletes expired rows from the sessions table.
type SessionSweepJob struct {
	repo     repository.SessionRepository
	interval time.Duration
	now      func() time.Time
}

func NewSessionSweepJob(repo repository.SessionRepository, interval time.Duration) *SessionSweepJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SessionSweepJob{repo: repo, interval: interval, now: time.Now}
}

func (j *SessionSweepJob) GetName() string {
	return "session_sweep"
}

func (j *SessionSweepJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *SessionSweepJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.repo.DeleteExpired(ctx, j.now().Unix())
	if err != nil {
		logger.Error("session sweep error", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("expired sessions removed", zap.Int64("count", n))
	}
}
