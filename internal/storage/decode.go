package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	apperrors "go-screenshot-detector/internal/errors"
	"go-screenshot-detector/pkg/models"
)

// decodeSourceImage turns raw image bytes into a SourceImage. EXIF parsing
// is best-effort: formats without an EXIF block (or with a corrupt one)
// yield a nil tag count, which the scoring rules treat as "no EXIF data".
func decodeSourceImage(data []byte, ref string) (*models.SourceImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to decode image", err)
	}

	return &models.SourceImage{
		Image:     img,
		Reference: ref,
		Format:    format,
		HasAlpha:  hasAlphaChannel(img),
		EXIFTags:  countEXIFTags(data),
	}, nil
}

// hasAlphaChannel reports whether the decoded image carries an alpha
// channel. NRGBA variants are only produced by decoders for images that
// declare alpha; premultiplied types count only when some pixel is
// actually translucent.
func hasAlphaChannel(img image.Image) bool {
	switch t := img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return true
	case *image.RGBA:
		return !t.Opaque()
	case *image.RGBA64:
		return !t.Opaque()
	default:
		return false
	}
}

type tagCounter struct {
	n int
}

func (c *tagCounter) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.n++
	return nil
}

func countEXIFTags(data []byte) *int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return nil
	}

	counter := &tagCounter{}
	if err := x.Walk(counter); err != nil {
		return nil
	}
	if counter.n == 0 {
		return nil
	}
	return &counter.n
}
