package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/fitcheck/internal/analysis"
	"github.com/your-org/fitcheck/pkg/dto"
)

const analyzeFailed = "Failed to analyze outfit. Please try again."

// Analyzer runs the analysis pipeline for one upload.
type Analyzer interface {
	Analyze(ctx context.Context, up analysis.Upload) (*analysis.Outcome, error)
}

type AnalyzeHandler struct {
	svc      Analyzer
	maxBytes int64
}

func NewAnalyzeHandler(svc Analyzer, maxBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, maxBytes: maxBytes}
}

// Analyze accepts a multipart upload in the "image" field.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if h.maxBytes > 0 {
		if c.Request.ContentLength > h.maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image file too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": analysis.ErrMissingFile.Error()})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
		return
	}

	out, err := h.svc.Analyze(c.Request.Context(), analysis.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        imageData,
	})
	if err != nil {
		if errors.Is(err, analysis.ErrMissingFile) || errors.Is(err, analysis.ErrNotImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("analysis error", "filename", header.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": analyzeFailed})
		return
	}

	c.JSON(http.StatusOK, toAnalyzeResponse(out))
}

func toAnalyzeResponse(out *analysis.Outcome) dto.AnalyzeResponse {
	return dto.AnalyzeResponse{
		ID:          out.ID,
		Rating:      out.Result.Rating,
		Style:       out.Result.Style,
		Description: out.Result.Description,
		Decision: dto.DecisionResponse{
			ShouldStop: out.Decision.ShouldStop,
			Reason:     out.Decision.Reason,
			Detail:     out.Decision.Detail,
		},
		Heuristic:  out.Heuristic,
		Classifier: out.Classifier,
		Properties: out.Properties,
		Metrics:    out.Record,
	}
}
