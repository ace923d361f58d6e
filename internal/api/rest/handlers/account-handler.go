package handlers

import (
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/services"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	svc services.AccountService
}

func NewAccountHandler(svc services.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) SetupRoutes(app fiber.Router, requireAuth fiber.Handler) {
	app.Get("/account-details", h.Get)
	app.Put("/account-details", requireAuth, h.Set)
}

// GET /account-details
func (h *AccountHandler) Get(ctx *fiber.Ctx) error {
	details, err := h.svc.Get(ctx.UserContext())
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}
	if details == nil {
		return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{})
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, details)
}

// PUT /account-details
func (h *AccountHandler) Set(ctx *fiber.Ctx) error {
	var req dto.AccountDetailsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseErr(ctx, errno.ErrBind)
	}

	if err := h.svc.Set(ctx.UserContext(), req); err != nil {
		return utils.ResponseErr(ctx, err)
	}
	return utils.ResponseOK(ctx)
}
