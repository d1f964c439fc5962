package classify

import (
	"math"
	"strings"

	"github.com/your-org/fitcheck/internal/models"
)

// maxTopLabels is how many raw labels a verdict keeps for display.
const maxTopLabels = 3

// ScoringConfig is the per-provider keyword and threshold table used to turn
// classifier labels into a verdict. Providers keep separate tables because
// their label vocabularies and calibration differ.
type ScoringConfig struct {
	HumanKeywords     []string
	ClothingKeywords  []string
	NonOutfitKeywords []string

	// IsOutfit requires human > HumanMin, clothing > ClothingMin and nonOutfit < NonOutfitMax.
	HumanMin     float64
	ClothingMin  float64
	NonOutfitMax float64
	// ObjectCutoff: nonOutfit above it reports object_detected.
	ObjectCutoff float64

	// ForceLowConfidenceBelow, when positive, replaces a verdict whose strongest
	// accumulator is below it with confidence 0.01 / uncertain_low_confidence.
	ForceLowConfidenceBelow float64
}

// HuggingFaceScoring is tuned for the ViT ImageNet labels returned by the inference API.
var HuggingFaceScoring = ScoringConfig{
	HumanKeywords: []string{"person", "man", "woman", "people", "human", "model", "portrait", "face"},
	ClothingKeywords: []string{
		"clothing", "shirt", "dress", "pants", "jeans", "jacket", "suit", "fashion", "uniform", "coat",
	},
	NonOutfitKeywords: []string{
		"computer", "screen", "logo", "text", "website", "application", "icon", "building", "car",
		"animal", "food", "landscape", "nature", "object",
		"bag", "handbag", "purse", "backpack", "luggage",
		"shoe", "boot", "sneaker", "sandal",
	},
	HumanMin:                0.15,
	ClothingMin:             0.05,
	NonOutfitMax:            0.6,
	ObjectCutoff:            0.5,
	ForceLowConfidenceBelow: 0.1,
}

// LocalScoring is tuned for the in-process MobileNet class names. Thresholds
// are looser than HuggingFaceScoring and there is no low-confidence override.
var LocalScoring = ScoringConfig{
	HumanKeywords: []string{"person", "people"},
	ClothingKeywords: []string{
		"suit", "dress", "shirt", "jean", "jacket", "coat", "uniform", "gown", "kimono", "bikini", "swimsuit",
	},
	NonOutfitKeywords: []string{
		"computer", "laptop", "screen", "monitor", "phone", "car", "building", "animal", "food", "plant",
		"logo", "sign", "text",
		"bag", "handbag", "purse", "backpack",
		"shoe", "boot", "sneaker",
	},
	HumanMin:     0.1,
	ClothingMin:  0.05,
	NonOutfitMax: 0.5,
	ObjectCutoff: 0.4,
}

// Score accumulates label scores per keyword group and derives a verdict.
// A label counts toward every group it matches.
func Score(labels []models.Label, cfg ScoringConfig, source models.Source) models.Verdict {
	var s models.LabelScores
	for _, l := range labels {
		name := strings.ToLower(l.Label)
		if containsAny(name, cfg.HumanKeywords) {
			s.Human += l.Score
		}
		if containsAny(name, cfg.ClothingKeywords) {
			s.Clothing += l.Score
		}
		if containsAny(name, cfg.NonOutfitKeywords) {
			s.NonOutfit += l.Score
		}
	}

	isOutfit := s.Human > cfg.HumanMin && s.Clothing > cfg.ClothingMin && s.NonOutfit < cfg.NonOutfitMax

	reasoning := models.ReasonNonClothingDetected
	switch {
	case s.NonOutfit > cfg.ObjectCutoff:
		reasoning = models.ReasonObjectDetected
	case s.Human < cfg.HumanMin:
		reasoning = models.ReasonNoPersonDetected
	case s.Clothing < cfg.ClothingMin:
		reasoning = models.ReasonNoClothingDetected
	case isOutfit:
		reasoning = models.ReasonOutfitDetected
	}

	confidence := math.Max(s.Human, math.Max(s.Clothing, s.NonOutfit))
	if cfg.ForceLowConfidenceBelow > 0 && confidence < cfg.ForceLowConfidenceBelow {
		confidence = 0.01
		reasoning = models.ReasonUncertainLowConfidence
	}

	top := labels
	if len(top) > maxTopLabels {
		top = top[:maxTopLabels]
	}

	return models.Verdict{
		IsOutfit:   isOutfit,
		Confidence: confidence,
		Reasoning:  reasoning,
		Source:     source,
		TopLabels:  append([]models.Label(nil), top...),
		Scores:     &s,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
