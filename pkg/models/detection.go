package models

import "image"

// SourceImage is the decoded input to a detection pass. It bundles the pixel
// data with the decode-time facts the metric extractor cannot recover from
// the pixels alone (alpha mode, EXIF tag count, origin reference).
// It is never mutated after construction.
type SourceImage struct {
	Image     image.Image
	Reference string
	Format    string
	HasAlpha  bool

	// EXIFTags is the number of EXIF tags found in the source bytes,
	// or nil when no EXIF block was present or readable.
	EXIFTags *int
}

// Width returns the pixel width of the decoded image.
func (s *SourceImage) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the pixel height of the decoded image.
func (s *SourceImage) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Metrics holds the thirteen detection signals. Every field is always
// populated after extraction; a signal whose computation failed carries its
// neutral default (zero, false or nil) instead of being omitted.
type Metrics struct {
	Alpha           bool       `json:"alpha"`
	AspectRatio     float64    `json:"aspect_ratio"`
	BorderVars      [2]float64 `json:"border_vars"`
	ELAStd          float64    `json:"ela_std"`
	EXIFLevel       *int       `json:"exif_level"`
	HorizEdgeRatio  float64    `json:"horiz_edge_ratio"`
	MoireScore      float64    `json:"moire_score"`
	NoiseMedianVar  float64    `json:"noise_median_var"`
	Sharpness       float64    `json:"sharpness"`
	SolidColorRatio float64    `json:"solid_color_ratio"`
	StatusBar       bool       `json:"status_bar"`
	TextConf        float64    `json:"text_conf"`
	VertSymmetry    float64    `json:"vert_symmetry"`
}

// Report is the result of one detection call.
//
// Score ranges over [0,15]: two of the thirteen rules award two points.
// Confidence still divides by ten and caps at 100, so it saturates for any
// score of ten or more. That mismatch is deliberate, inherited behavior.
type Report struct {
	IsScreenshot bool     `json:"is_screenshot"`
	Score        int      `json:"score"`
	Confidence   float64  `json:"confidence"`
	Reasons      []string `json:"reasons"`

	// Metrics is only populated when verbose output was requested.
	Metrics *Metrics `json:"metrics,omitempty"`
}
