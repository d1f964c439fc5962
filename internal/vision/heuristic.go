package vision

import "github.com/your-org/fitcheck/internal/models"

// HeuristicVerdict is the pixel-statistics gate. Rules are evaluated in order
// and the first match wins; rejections carry no confidence.
func HeuristicVerdict(p models.ImageProperties) models.Verdict {
	reject := func(r models.Reasoning) models.Verdict {
		return models.Verdict{IsOutfit: false, Reasoning: r, Source: models.SourceBasicAnalysis}
	}

	switch {
	case p.IsScreenshotLike:
		return reject(models.ReasonScreenshot)
	case p.IsIconLike:
		return reject(models.ReasonIcon)
	case p.IsMonochrome:
		return reject(models.ReasonMonochrome)
	}

	goodDimensions := p.Width >= 150 && p.Height >= 150
	reasonableAspect := p.AspectRatio > 0.2 && p.AspectRatio < 5

	if goodDimensions && reasonableAspect && p.ColorVariance > monochromeVariance {
		confidence := 0.6
		if p.AspectRatio < 0.8 { // portrait
			confidence = 0.8
		}
		return models.Verdict{
			IsOutfit:   true,
			Confidence: confidence,
			Reasoning:  models.ReasonBasicAnalysis,
			Source:     models.SourceBasicAnalysis,
		}
	}

	if goodDimensions && reasonableAspect {
		return models.Verdict{
			IsOutfit:   true,
			Confidence: 0.4,
			Reasoning:  models.ReasonBasicAnalysis,
			Source:     models.SourceBasicAnalysis,
		}
	}

	return reject(models.ReasonLowConfidence)
}

// UndecodableVerdict is the heuristic verdict for uploads that could not be decoded.
func UndecodableVerdict() models.Verdict {
	return models.Verdict{IsOutfit: false, Reasoning: models.ReasonLowConfidence, Source: models.SourceBasicAnalysis}
}
