package queue

import (
	"context"
	"strings"
	"time"

	"github.com/your-org/fitcheck/internal/models"
)

const (
	AnalysesStreamName  = "ANALYSES"
	AnalysesSubjectBase = "analyses"

	EventAnalysisCompleted = "analysis.completed"
)

// ResultEvent is published once per completed analysis.
type ResultEvent struct {
	Type       string                    `json:"type"`
	OccurredAt time.Time                 `json:"occurred_at"`
	Record     models.StyleMetricsRecord `json:"record"`
}

// Publisher emits completed analyses. Publishing is best-effort for callers.
type Publisher interface {
	PublishResult(ctx context.Context, rec models.StyleMetricsRecord) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishResult(context.Context, models.StyleMetricsRecord) error { return nil }

// SubjectFor maps a style to a single NATS subject token under analyses.
func SubjectFor(style models.Style) string {
	return AnalysesSubjectBase + "." + subjectToken(string(style))
}

func subjectToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
