package storage

import (
	"context"

	"go-screenshot-detector/pkg/models"
)

// ImageSource loads a source reference (file path, URL or blob address)
// into a decoded SourceImage ready for metric extraction.
type ImageSource interface {
	Load(ctx context.Context, ref string) (*models.SourceImage, error)
}
