package detector

import (
	"image"

	"go-screenshot-detector/pkg/models"
)

// ScreenshotDetector classifies a decoded image as screenshot vs camera
// photo. Implementations are immutable after construction and safe for
// concurrent use.
type ScreenshotDetector interface {
	// Detect runs the full metric-extraction and scoring pass
	Detect(src *models.SourceImage, opts DetectionOptions) models.Report

	// Process is the simple API: Detect with default options
	Process(src *models.SourceImage) models.Report

	// Threshold returns the configured decision threshold
	Threshold() int

	// WithThreshold returns a detector sharing this one's extraction
	// pipeline but deciding against a different threshold
	WithThreshold(threshold int) ScreenshotDetector
}

// TokenConfidence is one recognized text token with the engine's certainty
// for it. A confidence of -1 marks a token the engine could not rate.
type TokenConfidence struct {
	Text       string
	Confidence float64
}

// TextRecognizer is the OCR collaborator. The detector only needs
// per-token confidences, never the recognized text itself.
type TextRecognizer interface {
	Recognize(img image.Image) ([]TokenConfidence, error)
}
