package interfaces

import "context"

// Uploader persists an uploaded claim document and returns the reference
// stored on the submission: a public path or an absolute URL.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
