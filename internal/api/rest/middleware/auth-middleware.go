package middleware

import (
	"errors"

	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/session"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireAuth lets the request through only when the session carries an
// admin. The principal is put in Locals for the handler.
func RequireAuth(gate *session.Gate) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		p, err := gate.Current(ctx)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				logger.Warn("session lookup error", zap.String("path", ctx.Path()), zap.Error(err))
			}
			return utils.ResponseErr(ctx, errno.ErrUnauthorized)
		}

		ctx.Locals(helper.LocalsAdmin, p)
		return ctx.Next()
	}
}
