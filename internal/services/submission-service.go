package services

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/interfaces"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/SundayYogurt/claim_service/pkg/monitor"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ListLimit = 1000

	// CreatedAtLayout is the single textual form of submission timestamps.
	CreatedAtLayout = "2006-01-02T15:04:05.000Z"

	folderIDFiles      = "claims/id-files"
	folderPaymentProof = "claims/payment-proofs"
)

type SubmissionService interface {
	Create(ctx context.Context, form dto.SubmissionForm, files dto.SubmissionFiles) (*dto.SubmissionCreatedResponse, error)
	List(ctx context.Context) ([]dto.SubmissionResponse, error)
	SetStatus(ctx context.Context, id string, status string) error
}

type submissionService struct {
	repo     repository.SubmissionRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler // optional

	maxFileSize int64
	now         func() time.Time
}

func NewSubmissionService(
	repo repository.SubmissionRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
	maxFileSize int64,
) SubmissionService {
	return &submissionService{
		repo:        repo,
		uploader:    uploader,
		producer:    producer,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

func (s *submissionService) Create(
	ctx context.Context,
	form dto.SubmissionForm,
	files dto.SubmissionFiles,
) (*dto.SubmissionCreatedResponse, error) {
	// validate everything before any file is written
	form = normalizeForm(form)

	missing, invalid := utils.SplitValidationErrors(utils.Validator().Struct(form))
	if files.IDFile == nil || len(files.IDFile.Bytes) == 0 {
		missing = append(missing, "idFile")
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return nil, errno.Validation(utils.ValidationMessage(missing, invalid))
	}

	amount, err := ParseAmount(form.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, errno.Validation("Invalid amount")
	}

	if err := s.checkFile(files.IDFile); err != nil {
		return nil, err
	}
	if files.PaymentProof != nil && len(files.PaymentProof.Bytes) == 0 {
		files.PaymentProof = nil
	}
	if err := s.checkFile(files.PaymentProof); err != nil {
		return nil, err
	}

	id := NewSubmissionID()

	idFileURL, err := s.upload(ctx, id, folderIDFiles, files.IDFile)
	if err != nil {
		return nil, err
	}
	proofURL, err := s.upload(ctx, id, folderPaymentProof, files.PaymentProof)
	if err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		ID:              id,
		Name:            &form.Name,
		Email:           &form.Email,
		Method:          domain.PaymentMethod(form.Method),
		SelectedNetwork: optional(form.SelectedNetwork),
		Amount:          decimal.NewNullDecimal(amount),
		TxID:            optional(form.TxID),
		IDFileURL:       idFileURL,
		PaymentProofURL: proofURL,
		Status:          domain.SubmissionStatusPending,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		logger.Error("create submission error", zap.String("submission_id", id), zap.Error(err))
		return nil, errno.ErrServer
	}

	monitor.SubmissionCreated(form.Method)
	s.publish(dto.EventSubmissionCreated, sub)
	logger.Info("submission created",
		zap.String("submission_id", id),
		zap.String("method", form.Method),
	)

	return &dto.SubmissionCreatedResponse{ID: id}, nil
}

func (s *submissionService) List(ctx context.Context) ([]dto.SubmissionResponse, error) {
	subs, err := s.repo.ListRecent(ctx, ListLimit)
	if err != nil {
		return nil, errno.ErrServer
	}

	out := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, ToSubmissionResponse(&subs[i]))
	}
	return out, nil
}

// SetStatus only knows one transition, pending to confirmed. Confirming an
// already confirmed submission succeeds without writing.
func (s *submissionService) SetStatus(ctx context.Context, id string, status string) error {
	id = strings.TrimSpace(id)
	status = strings.ToLower(strings.TrimSpace(status))

	if domain.SubmissionStatus(status) != domain.SubmissionStatusConfirmed {
		return errno.Validation("Invalid status")
	}
	if id == "" {
		return errno.ErrNotFound.WithMessage("Submission not found")
	}

	sub, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errno.ErrNotFound.WithMessage("Submission not found")
	}
	if err != nil {
		return errno.ErrServer
	}
	if sub.Status == domain.SubmissionStatusConfirmed {
		return nil
	}

	changed, err := s.repo.Confirm(ctx, id)
	if err != nil {
		return errno.ErrServer
	}
	if !changed {
		// confirmed concurrently
		return nil
	}

	sub.Status = domain.SubmissionStatusConfirmed
	monitor.SubmissionConfirmed()
	s.publish(dto.EventSubmissionConfirmed, sub)
	logger.Info("submission confirmed", zap.String("submission_id", id))
	return nil
}

func (s *submissionService) checkFile(f *dto.UploadFile) error {
	if f == nil {
		return nil
	}
	if s.maxFileSize > 0 && int64(len(f.Bytes)) > s.maxFileSize {
		return errno.ErrFileTooLarge
	}
	if !AllowedFileType(f.Bytes) {
		return errno.ErrFileType
	}
	return nil
}

// AllowedFileType sniffs content, not the extension. SVG is refused since
// it is served back as-is.
func AllowedFileType(b []byte) bool {
	mt := mimetype.Detect(b)
	if mt.Is("application/pdf") {
		return true
	}
	return strings.HasPrefix(mt.String(), "image/") && !mt.Is("image/svg+xml")
}

func (s *submissionService) upload(ctx context.Context, id, folder string, f *dto.UploadFile) (*string, error) {
	if f == nil {
		return nil, nil
	}
	ref, err := s.uploader.UploadBytes(ctx, folder, StoredFilename(f.Filename, f.Bytes), f.Bytes)
	if err != nil {
		logger.Error("upload submission file error",
			zap.String("submission_id", id),
			zap.String("folder", folder),
			zap.Error(err),
		)
		return nil, errno.ErrServer
	}
	return &ref, nil
}

// publish is best effort: a broker failure is logged, never returned.
func (s *submissionService) publish(eventType string, sub *domain.Submission) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.SubmissionEvent{
		Type:         eventType,
		SubmissionID: sub.ID,
		Method:       string(sub.Method),
		Status:       string(sub.Status),
		At:           s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(sub.ID), payload); err != nil {
		logger.Warn("publish submission event error",
			zap.String("event", eventType),
			zap.String("submission_id", sub.ID),
			zap.Error(err),
		)
	}
}

// StoredFilename replaces the client's extension with the one of the sniffed
// content type, so a stored file is always served as the type that passed
// the content check.
func StoredFilename(filename string, b []byte) string {
	base := strings.TrimSuffix(filename, path.Ext(filename))
	if strings.TrimSpace(base) == "" {
		base = "file"
	}
	return base + mimetype.Detect(b).Extension()
}

// NewSubmissionID returns 32 hex chars of a random UUID.
func NewSubmissionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func ToSubmissionResponse(sub *domain.Submission) dto.SubmissionResponse {
	var amount *string
	if sub.Amount.Valid {
		a := sub.Amount.Decimal.StringFixed(2)
		amount = &a
	}

	return dto.SubmissionResponse{
		ID:              sub.ID,
		Name:            sub.Name,
		Email:           sub.Email,
		Method:          string(sub.Method),
		SelectedNetwork: sub.SelectedNetwork,
		Amount:          amount,
		TxID:            sub.TxID,
		IDFileURL:       sub.IDFileURL,
		PaymentProofURL: sub.PaymentProofURL,
		Status:          string(sub.Status),
		CreatedAt:       sub.CreatedAt.UTC().Format(CreatedAtLayout),
	}
}

func normalizeForm(f dto.SubmissionForm) dto.SubmissionForm {
	return dto.SubmissionForm{
		Name:            strings.TrimSpace(f.Name),
		Email:           strings.TrimSpace(f.Email),
		Method:          strings.ToLower(strings.TrimSpace(f.Method)),
		Amount:          strings.TrimSpace(f.Amount),
		TxID:            strings.TrimSpace(f.TxID),
		SelectedNetwork: strings.TrimSpace(f.SelectedNetwork),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
