package gate

import (
	"fmt"

	"github.com/your-org/fitcheck/internal/models"
)

var heuristicMessages = map[models.Reasoning]string{
	models.ReasonScreenshot: "This looks like a screenshot. Please upload a photo of a person in clothing for style analysis.",
	models.ReasonIcon:       "This looks like an icon or logo. Style rating requires a full-body photo or portrait with clothing.",
	models.ReasonMonochrome: "The image has very few colors. Please upload a colorful outfit photo for better analysis.",
}

const defaultMessage = "Cannot confidently identify an outfit in this image. Please try a higher quality photo of a person in clothing."

// Describe builds the user-facing explanation for a rejected upload. A negative
// classifier verdict with a known reason wins; otherwise the heuristic reason
// picks the message.
func Describe(heuristic models.Verdict, classifier *models.Verdict) string {
	if classifier != nil && !classifier.IsOutfit && classifier.Reasoning != "" {
		if msg, ok := classifierMessage(*classifier); ok {
			return msg
		}
	}

	if msg, ok := heuristicMessages[heuristic.Reasoning]; ok {
		return msg
	}
	return defaultMessage
}

func classifierMessage(v models.Verdict) (string, bool) {
	top := v.TopLabel()
	if top == "" {
		top = "object"
	}

	switch v.Reasoning {
	case models.ReasonObjectDetected:
		return fmt.Sprintf("AI detected an object %q that is not an outfit. Please upload a photo of a person in clothing for style analysis.", top), true
	case models.ReasonNoPersonDetected:
		return "No person found in the photo. Style rating requires a photo of a person in an outfit, not separate items or accessories.", true
	case models.ReasonNoClothingDetected:
		return "Person detected, but no clothing visible for analysis. Please upload a photo where the outfit is fully visible.", true
	case models.ReasonNonClothingDetected:
		return fmt.Sprintf("AI detected %q which is not suitable for style analysis. A photo of a person in clothing is needed.", top), true
	case models.ReasonOutfitDetected:
		return "AI detected an outfit, but basic validation failed. Please try another photo.", true
	}
	return "", false
}
