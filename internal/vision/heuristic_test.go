package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/fitcheck/internal/models"
)

func props(w, h int, variance float64) models.ImageProperties {
	return models.ImageProperties{
		Width:            w,
		Height:           h,
		AspectRatio:      float64(w) / float64(h),
		ColorVariance:    variance,
		IsMonochrome:     variance < monochromeVariance,
		IsScreenshotLike: IsScreenshotLike(w, h),
		IsIconLike:       IsIconLike(w, h),
	}
}

func TestHeuristicVerdict_ScreenshotWinsRegardlessOfVariance(t *testing.T) {
	for _, variance := range []float64{0, 999, 1000, 5000, 1e6} {
		v := HeuristicVerdict(props(1920, 1080, variance))

		assert.False(t, v.IsOutfit)
		assert.Equal(t, models.ReasonScreenshot, v.Reasoning)
		assert.Zero(t, v.Confidence)
		assert.Equal(t, models.SourceBasicAnalysis, v.Source)
	}
}

func TestHeuristicVerdict_Rules(t *testing.T) {
	tests := []struct {
		name       string
		p          models.ImageProperties
		isOutfit   bool
		reasoning  models.Reasoning
		confidence float64
	}{
		{"icon", props(128, 128, 5000), false, models.ReasonIcon, 0},
		{"monochrome", props(800, 1200, 200), false, models.ReasonMonochrome, 0},
		{"portrait colorful", props(1080, 1920, 4000), true, models.ReasonBasicAnalysis, 0.8},
		{"landscape colorful", props(1200, 900, 4000), true, models.ReasonBasicAnalysis, 0.6},
		{"variance exactly at threshold", props(800, 1200, 1000), true, models.ReasonBasicAnalysis, 0.4},
		{"extreme aspect ratio", props(3000, 160, 4000), false, models.ReasonLowConfidence, 0},
		{"too narrow", props(120, 900, 4000), false, models.ReasonLowConfidence, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := HeuristicVerdict(tt.p)
			assert.Equal(t, tt.isOutfit, v.IsOutfit)
			assert.Equal(t, tt.reasoning, v.Reasoning)
			assert.InDelta(t, tt.confidence, v.Confidence, 1e-9)
		})
	}
}

func TestHeuristicVerdict_IconCheckedBeforeMonochrome(t *testing.T) {
	v := HeuristicVerdict(props(100, 100, 0))
	assert.Equal(t, models.ReasonIcon, v.Reasoning)
}
