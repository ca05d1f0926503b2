package detector

import (
	"go-screenshot-detector/pkg/models"
)

// DefaultThreshold is the minimum score classified as a screenshot when no
// explicit threshold is configured.
const DefaultThreshold = 5

// screenshotDetector implements ScreenshotDetector. The threshold is fixed
// at construction and the extractor holds no per-call state, so one value
// serves any number of concurrent callers.
type screenshotDetector struct {
	threshold int
	extractor *extractor
}

// NewScreenshotDetector creates a detector with the given decision
// threshold and OCR collaborator. A negative threshold selects the
// default; a nil recognizer disables the text-confidence signal (it stays
// at its neutral default).
func NewScreenshotDetector(threshold int, recognizer TextRecognizer) ScreenshotDetector {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &screenshotDetector{
		threshold: threshold,
		extractor: newExtractor(recognizer),
	}
}

// Detect runs the full pass: extract the thirteen metrics, apply the rule
// table, assemble the report.
func (d *screenshotDetector) Detect(src *models.SourceImage, opts DetectionOptions) models.Report {
	metrics := d.extractor.Extract(src)
	score, reasons := scoreMetrics(metrics)

	confidence := float64(score) / 10 * 100
	if confidence > 100 {
		confidence = 100
	}

	report := models.Report{
		IsScreenshot: score >= d.threshold,
		Score:        score,
		Confidence:   confidence,
		Reasons:      reasons,
	}

	if opts.Verbose {
		m := metrics
		report.Metrics = &m
	}

	return report
}

// Process is the simple API: Detect with default options
func (d *screenshotDetector) Process(src *models.SourceImage) models.Report {
	return d.Detect(src, DefaultOptions())
}

// Threshold returns the configured decision threshold
func (d *screenshotDetector) Threshold() int {
	return d.threshold
}

// WithThreshold returns a detector deciding against a different threshold
// while sharing this one's extraction pipeline.
func (d *screenshotDetector) WithThreshold(threshold int) ScreenshotDetector {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &screenshotDetector{
		threshold: threshold,
		extractor: d.extractor,
	}
}
