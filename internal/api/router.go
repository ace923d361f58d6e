package api

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"github.com/SundayYogurt/claim_service/config"
	"github.com/SundayYogurt/claim_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/SundayYogurt/claim_service/pkg/monitor"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func newFiber(cfg config.Config) *fiber.App {
	// two files plus the text fields
	bodyLimit := 4 * 1024 * 1024
	if cfg.MaxUploadBytes > 0 {
		bodyLimit = int(2*cfg.MaxUploadBytes) + 1024*1024
	}

	return fiber.New(fiber.Config{
		AppName:      "claim-svc",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})
}

// errorHandler renders framework errors (unknown route, body too large)
// in the same {message} shape as handler errors.
func errorHandler(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.ResponseError(ctx, fe.Code, fe.Message)
	}
	logger.Error("unhandled request error", zap.String("path", ctx.Path()), zap.Error(err))
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Server error")
}

func registerCommon(app *fiber.App, cfg config.Config) {
	app.Use(recover.New())
	app.Use(monitor.Middleware())

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowHeaders:     "Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, OPTIONS",
		AllowCredentials: cfg.CorsOrigins != "*",
	}))

	// the session id cookie is encrypted with a key derived from SESSION_SECRET
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: CookieKey(cfg.SessionSecret),
	}))

	app.Get("/_health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// CookieKey derives the 32-byte AES key encryptcookie expects.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
