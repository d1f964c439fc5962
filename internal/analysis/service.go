// Package analysis runs one upload through the outfit gate, the rating
// service and the style metrics extractor.
package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/fitcheck/internal/classify"
	"github.com/your-org/fitcheck/internal/gate"
	"github.com/your-org/fitcheck/internal/models"
	"github.com/your-org/fitcheck/internal/observability"
	"github.com/your-org/fitcheck/internal/queue"
	"github.com/your-org/fitcheck/internal/rating"
	"github.com/your-org/fitcheck/internal/stylemetrics"
	"github.com/your-org/fitcheck/internal/vision"
)

var (
	ErrMissingFile = errors.New("no image file provided")
	ErrNotImage    = errors.New("file must be an image")
)

// Upload is one user-submitted file.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Outcome is everything produced for one upload.
type Outcome struct {
	ID         uuid.UUID                 `json:"id"`
	Decision   models.OutfitDecision     `json:"decision"`
	Heuristic  models.Verdict            `json:"heuristic"`
	Classifier *models.Verdict           `json:"classifier,omitempty"`
	Result     models.AnalysisResult     `json:"result"`
	Record     models.StyleMetricsRecord `json:"record"`
	Properties *models.ImageProperties   `json:"properties,omitempty"`
}

// Classifier is the fallback chain; ok=false when every provider was unavailable.
type Classifier interface {
	Classify(ctx context.Context, in classify.Input) (models.Verdict, bool)
}

// Recorder stores completed records. Implementations swallow their own errors.
type Recorder interface {
	Record(ctx context.Context, rec models.StyleMetricsRecord)
}

// Service is safe for concurrent use; uploads are analyzed independently.
type Service struct {
	classifier Classifier
	rater      rating.Rater
	extractor  *stylemetrics.Extractor
	history    Recorder
	publisher  queue.Publisher
}

// NewService wires the pipeline. publisher may be nil.
func NewService(classifier Classifier, rater rating.Rater, extractor *stylemetrics.Extractor, history Recorder, publisher queue.Publisher) *Service {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &Service{
		classifier: classifier,
		rater:      rater,
		extractor:  extractor,
		history:    history,
		publisher:  publisher,
	}
}

// Analyze validates the upload, gates it, rates it when the gate proceeds,
// and records the derived metrics. Only validation and rating failures are
// returned; classifier, storage and publish problems are absorbed.
func (s *Service) Analyze(ctx context.Context, up Upload) (*Outcome, error) {
	if len(up.Data) == 0 {
		return nil, ErrMissingFile
	}
	if !strings.HasPrefix(strings.ToLower(up.ContentType), "image/") {
		return nil, ErrNotImage
	}

	out := &Outcome{ID: uuid.New()}
	log := slog.With("analysis_id", out.ID, "filename", up.Filename)

	start := time.Now()
	img, err := vision.Decode(up.Data)
	observability.StageDuration.WithLabelValues("decode").Observe(time.Since(start).Seconds())

	in := classify.Input{Filename: up.Filename, ContentType: up.ContentType, Data: up.Data}
	if err != nil {
		log.Warn("image analysis failed", "error", err)
		out.Heuristic = vision.UndecodableVerdict()
	} else {
		props := vision.Properties(img)
		out.Properties = &props
		out.Heuristic = vision.HeuristicVerdict(props)
		in.Image = img
		in.Properties = &props
	}

	if v, ok := s.classifier.Classify(ctx, in); ok {
		out.Classifier = &v
	}

	out.Decision = gate.Decide(out.Heuristic, out.Classifier)
	logDecision(log, out)

	if out.Decision.ShouldStop {
		out.Result = *out.Decision.ResultIfStopped
		observability.GateDecisions.WithLabelValues(string(out.Decision.Reason)).Inc()
	} else {
		observability.GateDecisions.WithLabelValues("proceed").Inc()

		start = time.Now()
		result, err := s.rater.Rate(ctx, up.Data, up.ContentType)
		observability.StageDuration.WithLabelValues("rate").Observe(time.Since(start).Seconds())
		if err != nil {
			observability.AnalysesTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		out.Result = result.Normalize()
	}

	out.Record = s.extractor.Extract(out.Result)
	s.history.Record(ctx, out.Record)
	if err := s.publisher.PublishResult(ctx, out.Record); err != nil {
		log.Warn("failed to publish analysis result", "error", err)
	}

	outcome := "rated"
	if out.Result.IsNotAnOutfit() {
		outcome = "not_outfit"
	}
	observability.AnalysesTotal.WithLabelValues(outcome).Inc()
	log.Info("analysis completed",
		"outcome", outcome,
		"rating", out.Result.Rating,
		"style", out.Result.Style,
		"energy", out.Record.EnergyLevel.Level,
	)
	return out, nil
}

func logDecision(log *slog.Logger, out *Outcome) {
	attrs := []any{
		"should_stop", out.Decision.ShouldStop,
		"heuristic_is_outfit", out.Heuristic.IsOutfit,
		"heuristic_reason", out.Heuristic.Reasoning,
	}
	if out.Decision.Reason != models.StopNone {
		attrs = append(attrs, "reason", out.Decision.Reason)
	}
	if out.Decision.Detail != "" {
		attrs = append(attrs, "detail", out.Decision.Detail)
	}
	if c := out.Classifier; c != nil {
		attrs = append(attrs,
			"classifier_source", c.Source,
			"classifier_is_outfit", c.IsOutfit,
			"classifier_confidence", c.Confidence,
			"classifier_reason", c.Reasoning,
		)
	} else {
		attrs = append(attrs, "classifier", "unavailable")
	}
	log.Info("outfit gate decision", attrs...)
}
