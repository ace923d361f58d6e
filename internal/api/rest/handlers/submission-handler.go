package handlers

import (
	"errors"

	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/services"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	pkgutils "github.com/SundayYogurt/claim_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	svc         services.SubmissionService
	maxFileSize int64
}

func NewSubmissionHandler(svc services.SubmissionService, maxFileSize int64) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, maxFileSize: maxFileSize}
}

func (h *SubmissionHandler) SetupRoutes(app fiber.Router, requireAuth fiber.Handler) {
	subs := app.Group("/submissions")

	subs.Post("/", h.Create)
	subs.Get("/", requireAuth, h.List)
	subs.Put("/:id/status", requireAuth, h.SetStatus)
}

// POST /submissions
// multipart: name, email, method, amount, txid?, selectedNetwork?, idFile, paymentProof?
func (h *SubmissionHandler) Create(ctx *fiber.Ctx) error {
	var form dto.SubmissionForm
	if err := ctx.BodyParser(&form); err != nil {
		return utils.ResponseErr(ctx, errno.ErrBind)
	}

	idFile, err := h.readFile(ctx, "idFile")
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}
	proof, err := h.readFile(ctx, "paymentProof")
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}

	res, err := h.svc.Create(ctx.UserContext(), form, dto.SubmissionFiles{
		IDFile:       idFile,
		PaymentProof: proof,
	})
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// readFile returns nil when the part is absent.
func (h *SubmissionHandler) readFile(ctx *fiber.Ctx, field string) (*dto.UploadFile, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		// missing part or not a multipart body
		return nil, nil
	}

	limit := h.maxFileSize
	if limit <= 0 {
		limit = fh.Size
	}
	if fh.Size > limit {
		return nil, errno.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error("open uploaded file error", zap.String("field", field), zap.Error(err))
		return nil, errno.ErrServer
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, limit)
	if errors.Is(err, pkgutils.ErrTooLarge) {
		return nil, errno.ErrFileTooLarge
	}
	if err != nil {
		logger.Error("read uploaded file error", zap.String("field", field), zap.Error(err))
		return nil, errno.ErrServer
	}
	return &dto.UploadFile{Filename: fh.Filename, Bytes: b}, nil
}

// GET /submissions
func (h *SubmissionHandler) List(ctx *fiber.Ctx) error {
	subs, err := h.svc.List(ctx.UserContext())
	if err != nil {
		return utils.ResponseErr(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, subs)
}

// PUT /submissions/:id/status
func (h *SubmissionHandler) SetStatus(ctx *fiber.Ctx) error {
	var req dto.SetStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseErr(ctx, errno.ErrBind)
	}

	if err := h.svc.SetStatus(ctx.UserContext(), ctx.Params("id"), req.Status); err != nil {
		return utils.ResponseErr(ctx, err)
	}
	return utils.ResponseOK(ctx)
}
