package utils

import (
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": msg,
	})
}

// ResponseErr writes any error through the errno mapping, so storage detail
// never reaches the client.
func ResponseErr(ctx *fiber.Ctx, err error) error {
	status, msg := errno.Decode(err)
	return ResponseError(ctx, status, msg)
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(data)
}

func ResponseOK(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
