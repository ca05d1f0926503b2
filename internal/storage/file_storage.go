package storage

import (
	"context"
	"os"

	apperrors "go-screenshot-detector/internal/errors"
	"go-screenshot-detector/pkg/models"
)

// FileImageSource loads images from the local filesystem. This is the
// primary backend for detection: KYC pipelines hand the detector a path to
// an already-uploaded document photo.
type FileImageSource struct{}

// NewFileImageSource creates a filesystem-backed image source
func NewFileImageSource() ImageSource {
	return &FileImageSource{}
}

func (f *FileImageSource) Load(ctx context.Context, path string) (*models.SourceImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("image not found: "+path, err)
		}
		return nil, apperrors.NewInternalError("failed to read image file", err)
	}

	return decodeSourceImage(data, path)
}
