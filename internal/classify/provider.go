package classify

import (
	"context"
	"image"

	"github.com/your-org/fitcheck/internal/models"
)

// Input is everything a provider may look at for one upload.
// Image and Properties are nil when the upload could not be decoded.
type Input struct {
	Filename    string
	ContentType string
	Data        []byte
	Image       image.Image
	Properties  *models.ImageProperties
}

// Provider is one link of the classifier fallback chain. ok=false means
// "unavailable" and never "rejected"; providers must not return errors.
type Provider interface {
	Name() string
	Classify(ctx context.Context, in Input) (v models.Verdict, ok bool)
}
