package imagehost

import (
	"context"
	"io"
)

// UploadResult is what the store needs to keep about a hosted image.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the image-hosting collaborator. Recipes keep the returned
// PublicID so the hosted file can be destroyed on remove/replace.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}
