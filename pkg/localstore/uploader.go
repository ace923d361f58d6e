package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/SundayYogurt/claim_service/pkg/utils"
)

const maxNameAttempts = 50

// DiskUploader writes uploads into a directory served statically under
// PublicPrefix. Files are created once and never rewritten.
type DiskUploader struct {
	Dir          string
	PublicPrefix string
	now          func() time.Time
}

func NewDiskUploader(dir, publicPrefix string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskUploader{
		Dir:          dir,
		PublicPrefix: publicPrefix,
		now:          time.Now,
	}, nil
}

// UploadBytes stores b as "<unix-ms>-<sanitized filename>" and returns the
// public path. The folder is not part of the on-disk layout; every upload
// lives directly under Dir.
func (u *DiskUploader) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	safe := utils.SanitizeFilename(filename)
	ms := u.now().UnixMilli()

	for i := 0; i < maxNameAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := fmt.Sprintf("%d-%s", ms+int64(i), safe)
		f, err := os.OpenFile(filepath.Join(u.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create upload file: %w", err)
		}

		if _, err := f.Write(b); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write upload file: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("close upload file: %w", err)
		}
		return u.PublicPrefix + "/" + name, nil
	}
	return "", errors.New("could not allocate a unique upload name")
}
