package repository

import (
	"context"

	"go-screenshot-detector/pkg/models"
)

// ImageRepository defines the interface for resolving source references
// into decoded images
type ImageRepository interface {
	// ResolveImage loads and decodes the image behind a reference
	ResolveImage(ctx context.Context, ref string) (*models.SourceImage, error)

	// ValidateSourceRef validates if the provided reference is acceptable
	ValidateSourceRef(ref string) error
}
