package dto

import (
	"github.com/google/uuid"

	"github.com/your-org/fitcheck/internal/models"
)

// WSEvent is a WebSocket message for real-time delivery of completed analyses.
type WSEvent struct {
	Type   string                     `json:"type"` // analysis_completed
	Style  models.Style               `json:"style"`
	Record *models.StyleMetricsRecord `json:"record,omitempty"`
}

type DecisionResponse struct {
	ShouldStop bool              `json:"should_stop"`
	Reason     models.StopReason `json:"reason,omitempty"`
	Detail     string            `json:"detail,omitempty"`
}

// AnalyzeResponse is the body of a successful POST /v1/analyze.
type AnalyzeResponse struct {
	ID          uuid.UUID                 `json:"id"`
	Rating      int                       `json:"rating"`
	Style       models.Style              `json:"style"`
	Description string                    `json:"description"`
	Decision    DecisionResponse          `json:"decision"`
	Heuristic   models.Verdict            `json:"heuristic"`
	Classifier  *models.Verdict           `json:"classifier,omitempty"`
	Properties  *models.ImageProperties   `json:"properties,omitempty"`
	Metrics     models.StyleMetricsRecord `json:"metrics"`
}

type HistoryResponse struct {
	Records []models.StyleMetricsRecord `json:"records"`
	Count   int                         `json:"count"`
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"min=0,max=1000"`
}
