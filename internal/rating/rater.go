// Package rating obtains a style rating for an outfit photo from a vision
// model, with a synthetic demo result when the model cannot be reached.
package rating

import (
	"context"
	"log/slog"

	"github.com/your-org/fitcheck/internal/models"
	"github.com/your-org/fitcheck/internal/observability"
)

// Rater rates one image. mimeType is the upload's declared content type.
type Rater interface {
	Rate(ctx context.Context, image []byte, mimeType string) (models.AnalysisResult, error)
}

type fallbackRater struct {
	primary Rater
	demo    Rater
}

// WithFallback returns a Rater that substitutes demo's result whenever primary
// fails. A nil primary always uses demo.
func WithFallback(primary, demo Rater) Rater {
	return &fallbackRater{primary: primary, demo: demo}
}

func (f *fallbackRater) Rate(ctx context.Context, image []byte, mimeType string) (models.AnalysisResult, error) {
	if f.primary != nil {
		result, err := f.primary.Rate(ctx, image, mimeType)
		if err == nil {
			return result, nil
		}
		slog.Warn("rating service failed, using demo result", "error", err)
		observability.RatingFallbacks.Inc()
	}
	return f.demo.Rate(ctx, image, mimeType)
}
