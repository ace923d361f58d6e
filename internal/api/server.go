package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SundayYogurt/claim_service/config"
	"github.com/SundayYogurt/claim_service/infra/queue"
	"github.com/SundayYogurt/claim_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/claim_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/interfaces"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/internal/services"
	"github.com/SundayYogurt/claim_service/internal/session"
	"github.com/SundayYogurt/claim_service/internal/task"
	"github.com/SundayYogurt/claim_service/pkg/cloudinary"
	"github.com/SundayYogurt/claim_service/pkg/localstore"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/SundayYogurt/claim_service/pkg/monitor"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PublicUploadPrefix is where locally stored uploads are served.
const PublicUploadPrefix = "/mock-storage"

// App is the service context: everything a request handler needs, built
// once before serving and torn down on shutdown.
type App struct {
	Config config.Config
	DB     *gorm.DB
	Fiber  *fiber.App
	Gate   *session.Gate

	redis    *redis.Client
	producer interfaces.Publisher
	tasks    *task.Manager
}

// NewApp wires repositories, services and handlers on top of an already
// bootstrapped database.
func NewApp(cfg config.Config, db *gorm.DB) (*App, error) {
	a := &App{Config: cfg, DB: db}
	monitor.InitBusinessMetrics()

	if cfg.SessionStore == "redis" || cfg.EventsBroker == "redis" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	// ---------- Sessions ----------
	var storage fiber.Storage
	switch cfg.SessionStore {
	case "database":
		sessionRepo := repository.NewSessionRepository(db)
		storage = session.NewDBStorage(sessionRepo)

		tasks, err := task.NewManager()
		if err != nil {
			return nil, err
		}
		if err := tasks.Register(task.NewSessionSweepJob(sessionRepo, cfg.SessionSweep)); err != nil {
			return nil, err
		}
		a.tasks = tasks
	case "redis":
		storage = session.NewRedisStorage(a.redis)
	}
	a.Gate = session.NewGate(session.GateConfig{
		Storage: storage,
		TTL:     cfg.SessionTTL,
		Secure:  cfg.IsProduction(),
	})

	// ---------- Infra ----------
	up, serveLocal, err := newUploader(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.EventsBroker {
	case "kafka":
		a.producer = queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
	case "redis":
		a.producer = queue.NewRedisProducer(a.redis, cfg.EventsStream)
	}
	logger.Info("events configured", zap.String("broker", cfg.EventsBroker))

	authHelper := helper.SetupAuth(bcrypt.DefaultCost)

	// ---------- Repositories ----------
	adminRepo := repository.NewAdminRepository(db)
	accountRepo := repository.NewAccountDetailsRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// ---------- Services ----------
	var producer interfaces.ProducerHandler
	if a.producer != nil {
		producer = a.producer
	}
	authSvc := services.NewAuthService(adminRepo, authHelper)
	accountSvc := services.NewAccountService(accountRepo)
	submissionSvc := services.NewSubmissionService(submissionRepo, up, producer, cfg.MaxUploadBytes)

	// ---------- HTTP ----------
	a.Fiber = newFiber(cfg)
	requireAuth := middleware.RequireAuth(a.Gate)

	registerCommon(a.Fiber, cfg)
	if serveLocal {
		a.Fiber.Static(PublicUploadPrefix, cfg.UploadDir, fiber.Static{
			Browse:         false,
			ModifyResponse: uploadHeaders,
		})
	}

	handlers.NewAdminHandler(authSvc, a.Gate, authHelper).SetupRoutes(a.Fiber, requireAuth)
	handlers.NewAccountHandler(accountSvc).SetupRoutes(a.Fiber, requireAuth)
	handlers.NewSubmissionHandler(submissionSvc, cfg.MaxUploadBytes).SetupRoutes(a.Fiber, requireAuth)

	return a, nil
}

// uploadHeaders stops browsers from sniffing stored uploads into an active
// type or running them in the API origin.
func uploadHeaders(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	ctx.Set(fiber.HeaderContentSecurityPolicy, "sandbox; default-src 'none'")
	return nil
}

// newUploader picks Cloudinary when configured, else the local disk store.
// The bool reports whether uploads must be served by this process.
func newUploader(cfg config.Config) (interfaces.Uploader, bool, error) {
	if cfg.CloudinaryUrl != "" {
		cld, err := cloudinary.New(cfg.CloudinaryUrl)
		if err != nil {
			return nil, false, fmt.Errorf("cloudinary init error: %w", err)
		}
		logger.Info("uploads stored on cloudinary")
		return cloudinary.NewCloudinaryUploader(cld), false, nil
	}

	disk, err := localstore.NewDiskUploader(cfg.UploadDir, PublicUploadPrefix)
	if err != nil {
		return nil, false, err
	}
	logger.Info("uploads stored on disk", zap.String("dir", cfg.UploadDir))
	return disk, true, nil
}

// Listen starts the background jobs and serves HTTP until the listener
// fails or the app is shut down.
func (a *App) Listen() error {
	if a.tasks != nil {
		a.tasks.Start()
	}
	logger.Info("listening", zap.String("addr", a.Config.ServerPort))
	return a.Fiber.Listen(a.Config.ServerPort)
}

// Shutdown stops accepting requests and waits for in-flight ones. Then it
// stops background jobs and releases the producer, Redis and the database.
func (a *App) Shutdown(timeout time.Duration) error {
	var errs []error

	if a.Fiber != nil {
		if err := a.Fiber.ShutdownWithTimeout(timeout); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if a.tasks != nil {
		if err := a.tasks.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("producer close: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("database close: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Listen()
	}()

	select {
	case err := <-errCh:
		_ = a.Shutdown(5 * time.Second)
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return a.Shutdown(10 * time.Second)
	}
}
