package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/SundayYogurt/claim_service/pkg/utils"
	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader stores claim documents as Cloudinary assets.
type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

// UploadBytes stores the file and returns its secure URL.
func (u *CloudinaryUploader) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (string, error) {
	if len(b) == 0 {
		return "", errors.New("cloudinary: empty file")
	}

	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(b), uploadParams(folder, filename))
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	// API-level failures come back in the result, not as err
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: no url returned")
	}
	return res.SecureURL, nil
}

// uploadParams keeps the original name readable in the console while letting
// Cloudinary append a suffix, so two claims with the same file name never
// overwrite each other. Resource type auto accepts PDFs as well as images.
func uploadParams(folder, filename string) uploader.UploadParams {
	name := utils.SanitizeFilename(filename)
	return uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(name, path.Ext(name)),
		ResourceType:   "auto",
		UniqueFilename: boolPtr(true),
		Overwrite:      boolPtr(false),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
