package classify

import (
	"context"
	"image"
	"log/slog"

	"github.com/your-org/fitcheck/internal/models"
)

// Labeler is an in-process general object classifier.
type Labeler interface {
	Labels(ctx context.Context, img image.Image) ([]models.Label, error)
}

// Local scores the output of an in-process model. Used only when the remote
// classifier is unavailable.
type Local struct {
	labeler Labeler
	scoring ScoringConfig
}

// NewLocal wraps labeler. A nil labeler makes the provider permanently unavailable.
func NewLocal(labeler Labeler) *Local {
	return &Local{labeler: labeler, scoring: LocalScoring}
}

func (l *Local) Name() string { return string(models.SourceTensorFlow) }

func (l *Local) Classify(ctx context.Context, in Input) (models.Verdict, bool) {
	if l.labeler == nil || in.Image == nil {
		return models.Verdict{}, false
	}

	labels, err := l.labeler.Labels(ctx, in.Image)
	if err != nil {
		slog.Debug("local classifier unavailable", "error", err)
		return models.Verdict{}, false
	}

	return Score(labels, l.scoring, models.SourceTensorFlow), true
}
