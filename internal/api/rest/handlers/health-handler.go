package handlers

import (
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
)

// GET /_health
func Health(ctx *fiber.Ctx) error {
	return utils.ResponseOK(ctx)
}
