package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/fitcheck/internal/storage"
	"github.com/your-org/fitcheck/pkg/dto"
)

type HistoryHandler struct {
	history *storage.History
}

func NewHistoryHandler(history *storage.History) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List returns the newest records, oldest first. limit=0 returns everything.
func (h *HistoryHandler) List(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := h.history.Recent(c.Request.Context(), q.Limit)
	c.JSON(http.StatusOK, dto.HistoryResponse{Records: records, Count: len(records)})
}

func (h *HistoryHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.history.Summary(c.Request.Context()))
}
