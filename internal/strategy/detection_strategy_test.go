package strategy

import (
	"testing"

	"go-screenshot-detector/internal/detector"
)

func TestThresholdProfiles(t *testing.T) {
	base := detector.NewScreenshotDetector(5, nil)

	tests := []struct {
		name      string
		strategy  DetectionStrategy
		threshold int
	}{
		{"default keeps the configured threshold", NewDefaultStrategy(base), 5},
		{"strict raises it by two", NewStrictStrategy(base), 7},
		{"lenient lowers it by two", NewLenientStrategy(base), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strategy.Threshold(); got != tt.threshold {
				t.Errorf("Expected threshold %d, got %d", tt.threshold, got)
			}
		})
	}

	if base.Threshold() != 5 {
		t.Errorf("Expected base detector unchanged, got threshold %d", base.Threshold())
	}
}

func TestLenientStrategy_FloorsAtZero(t *testing.T) {
	base := detector.NewScreenshotDetector(1, nil)

	if got := NewLenientStrategy(base).Threshold(); got != 0 {
		t.Errorf("Expected threshold floored at 0, got %d", got)
	}
}

func TestStrategyFor(t *testing.T) {
	base := detector.NewScreenshotDetector(5, nil)

	tests := []struct {
		profile  string
		expected string
	}{
		{"strict", "strict"},
		{"lenient", "lenient"},
		{"default", "default"},
		{"", "default"},
		{"unknown", "default"},
	}

	for _, tt := range tests {
		if got := StrategyFor(tt.profile, base).GetStrategyName(); got != tt.expected {
			t.Errorf("Expected strategy %q for profile %q, got %q", tt.expected, tt.profile, got)
		}
	}
}
