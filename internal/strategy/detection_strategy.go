package strategy

import (
	"go-screenshot-detector/internal/detector"
	"go-screenshot-detector/pkg/models"
)

// DetectionStrategy defines the interface for threshold profiles. Raising
// the threshold only ever shrinks the set of inputs classified as
// screenshots, so strict ⊆ default ⊆ lenient for any fixed image.
type DetectionStrategy interface {
	Detect(src *models.SourceImage, opts detector.DetectionOptions) models.Report
	Threshold() int
	GetStrategyName() string
}

type profileStrategy struct {
	name     string
	detector detector.ScreenshotDetector
}

func (s *profileStrategy) Detect(src *models.SourceImage, opts detector.DetectionOptions) models.Report {
	return s.detector.Detect(src, opts)
}

func (s *profileStrategy) Threshold() int {
	return s.detector.Threshold()
}

func (s *profileStrategy) GetStrategyName() string {
	return s.name
}

// NewDefaultStrategy decides at the detector's configured threshold
func NewDefaultStrategy(d detector.ScreenshotDetector) DetectionStrategy {
	return &profileStrategy{name: "default", detector: d}
}

// NewStrictStrategy decides two points above the configured threshold. It
// trades recall for precision: fewer uploads get flagged, so fewer genuine
// document photos are bounced.
func NewStrictStrategy(d detector.ScreenshotDetector) DetectionStrategy {
	return &profileStrategy{name: "strict", detector: d.WithThreshold(d.Threshold() + 2)}
}

// NewLenientStrategy decides two points below the configured threshold
// (floored at zero), for pipelines where a flag only triggers manual
// review.
func NewLenientStrategy(d detector.ScreenshotDetector) DetectionStrategy {
	threshold := d.Threshold() - 2
	if threshold < 0 {
		threshold = 0
	}
	return &profileStrategy{name: "lenient", detector: d.WithThreshold(threshold)}
}

// StrategyFor returns the named profile built around the given detector;
// unknown names fall back to the default profile.
func StrategyFor(name string, d detector.ScreenshotDetector) DetectionStrategy {
	switch name {
	case "strict":
		return NewStrictStrategy(d)
	case "lenient":
		return NewLenientStrategy(d)
	default:
		return NewDefaultStrategy(d)
	}
}
