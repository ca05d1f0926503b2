package detector

import (
	"fmt"
	"math"

	"go-screenshot-detector/pkg/models"
)

// MaxScore is the highest achievable score. Two rules award two points, so
// the ceiling is 15 rather than the nominal "/10" the confidence formula
// divides by; scores of ten or more already report 100% confidence.
const MaxScore = 15

// commonAspectRatios are display proportions screenshots inherit from the
// device: 4:3, 3:2, 16:10, 16:9, 18:9 and 19.5:9.
var commonAspectRatios = []float64{1.33, 1.5, 1.6, 1.78, 2.0, 2.16}

// rule is one row of the scoring table: a predicate over the metric set,
// its point weight and the reason reported when it fires.
type rule struct {
	points  int
	applies func(m models.Metrics) bool
	reason  func(m models.Metrics) string
}

// scoringRules is the fixed rule table. Rules are independent and always
// evaluated in this order; the reasons list preserves it.
var scoringRules = []rule{
	{
		points:  2,
		applies: func(m models.Metrics) bool { return m.Alpha },
		reason:  func(m models.Metrics) string { return "Has alpha channel" },
	},
	{
		points: 1,
		applies: func(m models.Metrics) bool {
			for _, r := range commonAspectRatios {
				if math.Abs(m.AspectRatio-r) < 0.05 {
					return true
				}
			}
			return false
		},
		reason: func(m models.Metrics) string {
			return fmt.Sprintf("Common aspect ratio: %.2f", m.AspectRatio)
		},
	},
	{
		points: 1,
		applies: func(m models.Metrics) bool {
			return m.BorderVars[0] < 100 && m.BorderVars[1] < 100
		},
		reason: func(m models.Metrics) string {
			return fmt.Sprintf("Low border variance: (%.2f, %.2f)", m.BorderVars[0], m.BorderVars[1])
		},
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.ELAStd < 50 },
		reason:  func(m models.Metrics) string { return fmt.Sprintf("Low ELA: %.2f", m.ELAStd) },
	},
	{
		points: 1,
		applies: func(m models.Metrics) bool {
			return m.EXIFLevel == nil || *m.EXIFLevel == 0
		},
		reason: func(m models.Metrics) string { return "No EXIF data" },
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.HorizEdgeRatio > 0.3 },
		reason: func(m models.Metrics) string {
			return fmt.Sprintf("High horizontal edges: %.2f", m.HorizEdgeRatio)
		},
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.MoireScore < 50 },
		reason:  func(m models.Metrics) string { return fmt.Sprintf("Low moiré: %.2f", m.MoireScore) },
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.NoiseMedianVar < 10 },
		reason:  func(m models.Metrics) string { return fmt.Sprintf("Low noise: %.2f", m.NoiseMedianVar) },
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.Sharpness > 100 },
		reason:  func(m models.Metrics) string { return fmt.Sprintf("High sharpness: %.2f", m.Sharpness) },
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.SolidColorRatio > 0.5 },
		reason: func(m models.Metrics) string {
			return fmt.Sprintf("High solid color: %.2f", m.SolidColorRatio)
		},
	},
	{
		points:  2,
		applies: func(m models.Metrics) bool { return m.StatusBar },
		reason:  func(m models.Metrics) string { return "Status bar detected" },
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.TextConf > 70 },
		reason: func(m models.Metrics) string {
			return fmt.Sprintf("High text confidence: %.2f", m.TextConf)
		},
	},
	{
		points:  1,
		applies: func(m models.Metrics) bool { return m.VertSymmetry > 0.8 },
		reason: func(m models.Metrics) string {
			return fmt.Sprintf("High vertical symmetry: %.2f", m.VertSymmetry)
		},
	},
}

// scoreMetrics applies the rule table and returns the total score with the
// fired rules' reasons in table order.
func scoreMetrics(m models.Metrics) (int, []string) {
	score := 0
	reasons := make([]string, 0, len(scoringRules))

	for _, r := range scoringRules {
		if r.applies(m) {
			score += r.points
			reasons = append(reasons, r.reason(m))
		}
	}

	return score, reasons
}
