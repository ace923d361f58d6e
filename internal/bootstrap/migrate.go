package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/internal/services"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/SundayYogurt/claim_service/pkg/monitor"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var legacyIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// MigrationStats reports what one import run did.
type MigrationStats struct {
	Skipped    bool // submissions already present
	Total      int
	Migrated   int
	Duplicates int
	Failed     int
	Errors     []string
	StartTime  time.Time
	EndTime    time.Time
}

func (s *MigrationStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// MigrateIfEmpty imports legacy submissions, but only into an empty
// submissions table. Records that fail to insert are logged and counted;
// the run always continues.
func MigrateIfEmpty(ctx context.Context, repo repository.SubmissionRepository, src LegacySource) (*MigrationStats, error) {
	stats := &MigrationStats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	n, err := repo.Count(ctx)
	if err != nil {
		return stats, err
	}
	if n > 0 {
		stats.Skipped = true
		return stats, nil
	}

	records, err := src.Load()
	if err != nil {
		return stats, err
	}
	stats.Total = len(records)
	if len(records) == 0 {
		return stats, nil
	}

	now := time.Now().UTC()
	for i := range records {
		sub := FromLegacy(records[i], now)

		err := repo.Create(ctx, sub)
		switch {
		case err == nil:
			stats.Migrated++
		case helper.IsDuplicateKey(err):
			stats.Duplicates++
			logger.Warn("skip duplicate legacy submission", zap.String("submission_id", sub.ID))
		default:
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", sub.ID, err))
			logger.Warn("skip legacy submission", zap.String("submission_id", sub.ID), zap.Error(err))
		}
	}

	monitor.LegacyImported(stats.Migrated)
	logger.Info("legacy migration finished",
		zap.Int("total", stats.Total),
		zap.Int("migrated", stats.Migrated),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// FromLegacy normalizes one loosely typed legacy record. now replaces a
// missing or unparseable creation time.
func FromLegacy(rec dto.LegacySubmission, now time.Time) *domain.Submission {
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(rec.Method)))
	if !method.Valid() {
		method = domain.PaymentMethodCrypto
	}

	status := domain.SubmissionStatusPending
	if strings.EqualFold(strings.TrimSpace(rec.Status), string(domain.SubmissionStatusConfirmed)) {
		status = domain.SubmissionStatusConfirmed
	}

	return &domain.Submission{
		ID:              legacyID(rec.ID),
		Name:            nonEmpty(rec.Name),
		Email:           nonEmpty(rec.Email),
		Method:          method,
		SelectedNetwork: nonEmpty(rec.SelectedNetwork),
		Amount:          legacyAmount(rec.Amount),
		TxID:            nonEmpty(rec.TxID),
		IDFileURL:       nonEmpty(rec.IDFileURL),
		PaymentProofURL: nonEmpty(rec.PaymentProofURL),
		Status:          status,
		CreatedAt:       legacyTime(rec.CreatedAt, now),
	}
}

// legacyID reuses a string or integer id when it fits the column, else a
// fresh one is generated.
func legacyID(raw json.RawMessage) string {
	if s, ok := scalarText(raw); ok && legacyIDPattern.MatchString(s) {
		return s
	}
	return services.NewSubmissionID()
}

func legacyAmount(raw json.RawMessage) decimal.NullDecimal {
	s, ok := scalarText(raw)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, err := services.ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func legacyTime(raw json.RawMessage, now time.Time) time.Time {
	s, ok := scalarText(raw)
	if !ok {
		return now
	}
	s = strings.TrimSpace(s)

	// bare numbers are unix milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return now
}

// scalarText returns the text of a JSON string or number.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, s != ""
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", false
	}
	return num.String(), true
}

func nonEmpty(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
