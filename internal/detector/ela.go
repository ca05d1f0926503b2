package detector

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// elaQuality is the fixed JPEG quality for the recompression pass
const elaQuality = 90

// errorLevelStd re-encodes the image as JPEG at quality 90, reloads it and
// returns the standard deviation of the per-pixel RGB difference. Genuine
// camera JPEGs have been quantized once already and shift more under a
// second compression than freshly rendered screen content.
//
// The temp artifact gets a per-call unique name so concurrent detections
// never collide, and is removed on every exit path.
func (e *extractor) errorLevelStd(img image.Image) (float64, error) {
	tmpPath := filepath.Join(e.tempDir, fmt.Sprintf("ela-%s.jpg", uuid.NewString()))
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	original := imaging.Clone(img)
	if err := imaging.Save(original, tmpPath, imaging.JPEGQuality(elaQuality)); err != nil {
		return 0, fmt.Errorf("ela re-encode failed: %w", err)
	}

	reloaded, err := imaging.Open(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("ela reload failed: %w", err)
	}
	recompressed := imaging.Clone(reloaded)

	if len(recompressed.Pix) != len(original.Pix) {
		return 0, fmt.Errorf("ela dimension mismatch after recompression")
	}

	// RGBA stride of 4; alpha is not part of the difference.
	diffs := make([]float64, 0, len(original.Pix)/4*3)
	for i := 0; i < len(original.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(original.Pix[i+c]) - float64(recompressed.Pix[i+c])
			diffs = append(diffs, math.Abs(d))
		}
	}

	return math.Sqrt(popVariance(diffs)), nil
}
