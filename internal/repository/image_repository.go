package repository

import (
	"context"
	"strings"

	"go-screenshot-detector/internal/factory"
	"go-screenshot-detector/pkg/models"
	"go-screenshot-detector/pkg/validation"
)

// sourceImageRepository implements ImageRepository on top of the storage
// backend factory
type sourceImageRepository struct {
	sources   factory.SourceFactory
	validator *validation.SourceValidator
}

// NewSourceImageRepository creates a repository that resolves file, HTTP
// and Azure references through the backend factory
func NewSourceImageRepository(sources factory.SourceFactory) ImageRepository {
	return &sourceImageRepository{
		sources:   sources,
		validator: validation.NewSourceValidator(),
	}
}

// ResolveImage loads and decodes the image behind a reference
func (r *sourceImageRepository) ResolveImage(ctx context.Context, ref string) (*models.SourceImage, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, ErrEmptySourceRef
	}

	source, err := r.sources.SourceForReference(ref)
	if err != nil {
		return nil, err
	}

	return source.Load(ctx, ref)
}

// ValidateSourceRef validates if the provided reference is acceptable
func (r *sourceImageRepository) ValidateSourceRef(ref string) error {
	return r.validator.ValidateSourceRef(ref)
}
