package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"go.uber.org/zap"
)

// LegacySource yields submissions from the store that predates the
// relational one. Nothing to import is (nil, nil).
type LegacySource interface {
	Load() ([]dto.LegacySubmission, error)
}

// LegacyFile is the JSON document the old file-backed store wrote:
// {"submissions": [...], ...}.
type LegacyFile struct {
	Path string
}

func (f LegacyFile) Load() ([]dto.LegacySubmission, error) {
	if f.Path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy file: %w", err)
	}

	var doc dto.LegacyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse legacy file: %w", err)
	}

	trimmed := bytes.TrimSpace(doc.Submissions)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, nil
	}

	out := make([]dto.LegacySubmission, 0, len(items))
	for i, item := range items {
		var rec dto.LegacySubmission
		if err := json.Unmarshal(item, &rec); err != nil {
			logger.Warn("skip unreadable legacy record", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
