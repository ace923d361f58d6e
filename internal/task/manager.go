package task

import (
	"fmt"

	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Job is a unit of periodic background work.
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager owns the scheduler running the background jobs.
type Manager struct {
	scheduler gocron.Scheduler
}

func NewManager() (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Manager{scheduler: s}, nil
}

// Register adds a job. A run still in progress when the next one is due
// makes the next one skip.
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.GetName(), err)
	}
	logger.Info("job registered", zap.String("job", job.GetName()))
	return nil
}

func (m *Manager) Start() {
	m.scheduler.Start()
	logger.Info("task manager started", zap.Int("jobs", len(m.scheduler.Jobs())))
}

func (m *Manager) Stop() error {
	if err := m.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	logger.Info("task manager stopped")
	return nil
}
