package classify

import (
	"context"
	"math"
	"strings"

	"github.com/your-org/fitcheck/internal/models"
)

var (
	nonOutfitFilenameKeywords = []string{
		"screenshot", "screen", "logo", "icon", "desktop", "wallpaper", "document", "pdf",
	}
	outfitFilenameKeywords = []string{
		"selfie", "photo", "pic", "outfit", "look", "style", "fashion", "mirror", "ootd",
		"dress", "shirt", "pants", "jeans",
	}
)

// FilenameVerdict is the last-resort scorer. It is deliberately optimistic so
// that it almost never blocks a legitimate upload.
func FilenameVerdict(filename string, props *models.ImageProperties) models.Verdict {
	name := strings.ToLower(filename)

	confidence := 0.9
	reasoning := models.ReasonBasicAnalysis

	switch {
	case containsAny(name, nonOutfitFilenameKeywords):
		confidence = 0.05
		reasoning = models.ReasonFilenameSuggestsNonOutfit
	case containsAny(name, outfitFilenameKeywords):
		confidence = 0.98
		reasoning = models.ReasonFilenameSuggestsOutfit
	}

	if props != nil {
		if props.IsScreenshotLike || props.IsIconLike {
			confidence = math.Min(confidence, 0.15)
			reasoning = models.ReasonPropertiesSuggestNonOutfit
		} else {
			confidence = math.Max(confidence, 0.95)
			if reasoning == models.ReasonBasicAnalysis {
				reasoning = models.ReasonPropertiesSuggestOutfit
			}
		}

		if props.Width >= 100 && props.Height >= 100 {
			confidence = math.Max(confidence, 0.9)
		}
	}

	return models.Verdict{
		IsOutfit:   confidence > 0.1,
		Confidence: confidence,
		Reasoning:  reasoning,
		Source:     models.SourceSimpleAnalysis,
	}
}

// Filename adapts FilenameVerdict to the Provider interface. It is always available.
type Filename struct{}

func (Filename) Name() string { return string(models.SourceSimpleAnalysis) }

func (Filename) Classify(_ context.Context, in Input) (models.Verdict, bool) {
	return FilenameVerdict(in.Filename, in.Properties), true
}
