// Package gate decides whether an upload is worth sending to the paid rating
// service, combining the heuristic verdict with the classifier chain's verdict.
package gate

import (
	"fmt"

	"github.com/your-org/fitcheck/internal/models"
)

// classifierStopConfidence is the confidence a negative classifier verdict
// needs before it blocks an upload on its own.
const classifierStopConfidence = 0.1

// Decide applies the gate rules in order:
//  1. classifier says not an outfit with confidence above 0.1: stop;
//  2. classifier says not an outfit with low confidence: proceed, even if the
//     heuristic disagrees;
//  3. no classifier verdict and the heuristic rejects: stop;
//  4. otherwise proceed.
//
// classifier is nil when every provider was unavailable.
func Decide(heuristic models.Verdict, classifier *models.Verdict) models.OutfitDecision {
	if classifier != nil && !classifier.IsOutfit {
		if classifier.Confidence > classifierStopConfidence {
			return stop(models.StopAIDetectedNonOutfit,
				fmt.Sprintf("%s, confidence: %.2f", classifier.Source, classifier.Confidence),
				heuristic, classifier)
		}
		return models.OutfitDecision{
			Detail: fmt.Sprintf("%s uncertain, confidence: %.2f", classifier.Source, classifier.Confidence),
		}
	}

	if classifier == nil && !heuristic.IsOutfit {
		return stop(models.StopBasicAnalysisNonOutfit, string(heuristic.Reasoning), heuristic, nil)
	}

	return models.OutfitDecision{}
}

func stop(reason models.StopReason, detail string, heuristic models.Verdict, classifier *models.Verdict) models.OutfitDecision {
	result := models.NotAnOutfit(Describe(heuristic, classifier))
	return models.OutfitDecision{
		ShouldStop:      true,
		Reason:          reason,
		Detail:          detail,
		ResultIfStopped: &result,
	}
}
