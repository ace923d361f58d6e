package handlers

import (
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/services"
	"github.com/SundayYogurt/claim_service/internal/session"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminHandler struct {
	svc  services.AuthService
	gate *session.Gate
	auth helper.Auth
}

func NewAdminHandler(svc services.AuthService, gate *session.Gate, auth helper.Auth) *AdminHandler {
	return &AdminHandler{svc: svc, gate: gate, auth: auth}
}

func (h *AdminHandler) SetupRoutes(app fiber.Router, requireAuth fiber.Handler) {
	admin := app.Group("/admin")

	admin.Post("/login", h.Login)
	admin.Post("/logout", h.Logout)
	admin.Post("/change-password", requireAuth, h.ChangePassword)
	admin.Get("/me", requireAuth, h.Me)
}

// POST /admin/login
func (h *AdminHandler) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLogin
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseErr(ctx, errno.Validation("Missing credentials"))
	}

	admin, err := h.svc.Login(ctx.UserContext(), req)
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}

	if err := h.gate.Begin(ctx, dto.AuthPrincipal{AdminID: admin.ID, Email: admin.Email}); err != nil {
		logger.Error("start session error", zap.Uint("admin_id", admin.ID), zap.Error(err))
		return utils.ResponseErr(ctx, errno.ErrServer)
	}
	return utils.ResponseOK(ctx)
}

// POST /admin/logout
func (h *AdminHandler) Logout(ctx *fiber.Ctx) error {
	if err := h.gate.End(ctx); err != nil {
		logger.Warn("destroy session error", zap.Error(err))
	}
	return utils.ResponseOK(ctx)
}

// POST /admin/change-password
func (h *AdminHandler) ChangePassword(ctx *fiber.Ctx) error {
	p, err := h.auth.GetCurrentAdmin(ctx)
	if err != nil {
		return utils.ResponseErr(ctx, errno.ErrUnauthorized)
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseErr(ctx, errno.ErrBind)
	}

	if err := h.svc.ChangePassword(ctx.UserContext(), p.AdminID, req.Password); err != nil {
		return utils.ResponseErr(ctx, err)
	}
	return utils.ResponseOK(ctx)
}

// GET /admin/me
func (h *AdminHandler) Me(ctx *fiber.Ctx) error {
	p, err := h.auth.GetCurrentAdmin(ctx)
	if err != nil {
		return utils.ResponseErr(ctx, errno.ErrUnauthorized)
	}

	admin, err := h.svc.FindAdmin(ctx.UserContext(), p.AdminID)
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.AuthPrincipal{AdminID: admin.ID, Email: admin.Email})
}
