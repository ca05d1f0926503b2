package detector

import (
	"reflect"
	"testing"

	"go-screenshot-detector/pkg/models"
)

// quietMetrics returns a metric set that fires no scoring rule
func quietMetrics() models.Metrics {
	twelve := 12
	return models.Metrics{
		Alpha:           false,
		AspectRatio:     1.2,
		BorderVars:      [2]float64{200, 200},
		ELAStd:          60,
		EXIFLevel:       &twelve,
		HorizEdgeRatio:  0.1,
		MoireScore:      60,
		NoiseMedianVar:  20,
		Sharpness:       50,
		SolidColorRatio: 0.1,
		StatusBar:       false,
		TextConf:        30,
		VertSymmetry:    0.3,
	}
}

// loudMetrics returns a metric set that fires every scoring rule
func loudMetrics() models.Metrics {
	return models.Metrics{
		Alpha:           true,
		AspectRatio:     1.78,
		BorderVars:      [2]float64{10, 10},
		ELAStd:          5,
		EXIFLevel:       nil,
		HorizEdgeRatio:  0.5,
		MoireScore:      10,
		NoiseMedianVar:  2,
		Sharpness:       200,
		SolidColorRatio: 0.8,
		StatusBar:       true,
		TextConf:        85,
		VertSymmetry:    0.9,
	}
}

func TestScoreMetrics_NoRulesFire(t *testing.T) {
	score, reasons := scoreMetrics(quietMetrics())

	if score != 0 {
		t.Errorf("Expected score 0, got %d", score)
	}
	if len(reasons) != 0 {
		t.Errorf("Expected no reasons, got %v", reasons)
	}
}

func TestScoreMetrics_AllRulesFire(t *testing.T) {
	score, reasons := scoreMetrics(loudMetrics())

	if score != MaxScore {
		t.Errorf("Expected maximum score %d, got %d", MaxScore, score)
	}

	expected := []string{
		"Has alpha channel",
		"Common aspect ratio: 1.78",
		"Low border variance: (10.00, 10.00)",
		"Low ELA: 5.00",
		"No EXIF data",
		"High horizontal edges: 0.50",
		"Low moiré: 10.00",
		"Low noise: 2.00",
		"High sharpness: 200.00",
		"High solid color: 0.80",
		"Status bar detected",
		"High text confidence: 85.00",
		"High vertical symmetry: 0.90",
	}
	if !reflect.DeepEqual(reasons, expected) {
		t.Errorf("Expected reasons in rule-table order:\n%v\ngot:\n%v", expected, reasons)
	}
}

func TestScoreMetrics_IndividualRules(t *testing.T) {
	zero := 0

	tests := []struct {
		name   string
		mutate func(m *models.Metrics)
		points int
		reason string
	}{
		{
			name:   "Alpha channel is worth two points",
			mutate: func(m *models.Metrics) { m.Alpha = true },
			points: 2,
			reason: "Has alpha channel",
		},
		{
			name:   "Common aspect ratio within tolerance",
			mutate: func(m *models.Metrics) { m.AspectRatio = 1.76 },
			points: 1,
			reason: "Common aspect ratio: 1.76",
		},
		{
			name:   "Low border variance needs both strips",
			mutate: func(m *models.Metrics) { m.BorderVars = [2]float64{50, 50} },
			points: 1,
			reason: "Low border variance: (50.00, 50.00)",
		},
		{
			name:   "Low error level",
			mutate: func(m *models.Metrics) { m.ELAStd = 49.99 },
			points: 1,
			reason: "Low ELA: 49.99",
		},
		{
			name:   "Absent EXIF block",
			mutate: func(m *models.Metrics) { m.EXIFLevel = nil },
			points: 1,
			reason: "No EXIF data",
		},
		{
			name:   "Zero EXIF tags count as absent",
			mutate: func(m *models.Metrics) { m.EXIFLevel = &zero },
			points: 1,
			reason: "No EXIF data",
		},
		{
			name:   "High horizontal edge share",
			mutate: func(m *models.Metrics) { m.HorizEdgeRatio = 0.31 },
			points: 1,
			reason: "High horizontal edges: 0.31",
		},
		{
			name:   "Low moire energy",
			mutate: func(m *models.Metrics) { m.MoireScore = 49 },
			points: 1,
			reason: "Low moiré: 49.00",
		},
		{
			name:   "Low noise residual",
			mutate: func(m *models.Metrics) { m.NoiseMedianVar = 9.5 },
			points: 1,
			reason: "Low noise: 9.50",
		},
		{
			name:   "High sharpness",
			mutate: func(m *models.Metrics) { m.Sharpness = 101 },
			points: 1,
			reason: "High sharpness: 101.00",
		},
		{
			name:   "High solid color fraction",
			mutate: func(m *models.Metrics) { m.SolidColorRatio = 0.51 },
			points: 1,
			reason: "High solid color: 0.51",
		},
		{
			name:   "Status bar is worth two points",
			mutate: func(m *models.Metrics) { m.StatusBar = true },
			points: 2,
			reason: "Status bar detected",
		},
		{
			name:   "High OCR confidence",
			mutate: func(m *models.Metrics) { m.TextConf = 70.5 },
			points: 1,
			reason: "High text confidence: 70.50",
		},
		{
			name:   "High vertical symmetry",
			mutate: func(m *models.Metrics) { m.VertSymmetry = 0.81 },
			points: 1,
			reason: "High vertical symmetry: 0.81",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quietMetrics()
			tt.mutate(&m)

			score, reasons := scoreMetrics(m)

			if score != tt.points {
				t.Errorf("Expected score %d, got %d", tt.points, score)
			}
			if len(reasons) != 1 || reasons[0] != tt.reason {
				t.Errorf("Expected single reason %q, got %v", tt.reason, reasons)
			}
		})
	}
}

func TestScoreMetrics_BoundariesDoNotFire(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *models.Metrics)
	}{
		{"Aspect ratio exactly at tolerance", func(m *models.Metrics) { m.AspectRatio = 1.83 }},
		{"Border variance exactly 100", func(m *models.Metrics) { m.BorderVars = [2]float64{100, 100} }},
		{"ELA exactly 50", func(m *models.Metrics) { m.ELAStd = 50 }},
		{"Edge ratio exactly 0.3", func(m *models.Metrics) { m.HorizEdgeRatio = 0.3 }},
		{"Moire exactly 50", func(m *models.Metrics) { m.MoireScore = 50 }},
		{"Noise exactly 10", func(m *models.Metrics) { m.NoiseMedianVar = 10 }},
		{"Sharpness exactly 100", func(m *models.Metrics) { m.Sharpness = 100 }},
		{"Solid color exactly 0.5", func(m *models.Metrics) { m.SolidColorRatio = 0.5 }},
		{"Text confidence exactly 70", func(m *models.Metrics) { m.TextConf = 70 }},
		{"Symmetry exactly 0.8", func(m *models.Metrics) { m.VertSymmetry = 0.8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quietMetrics()
			tt.mutate(&m)

			score, _ := scoreMetrics(m)
			if score != 0 {
				t.Errorf("Expected boundary value not to fire, got score %d", score)
			}
		})
	}
}

func TestMaxScoreMatchesRuleTable(t *testing.T) {
	total := 0
	for _, r := range scoringRules {
		total += r.points
	}
	if total != MaxScore {
		t.Errorf("Expected rule table to sum to %d, got %d", MaxScore, total)
	}
}
