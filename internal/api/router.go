package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/fitcheck/internal/api/handlers"
	"github.com/your-org/fitcheck/internal/api/ws"
	"github.com/your-org/fitcheck/internal/storage"
)

type RouterConfig struct {
	Analyzer       handlers.Analyzer
	History        *storage.History
	Hub            *ws.Hub
	MaxUploadBytes int64
	ReadyChecks    []handlers.Check // probed by /readyz
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	systemH := handlers.NewSystemHandler(cfg.ReadyChecks...)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	if cfg.Hub != nil {
		v1.GET("/ws", cfg.Hub.HandleWS)
	}

	analyzeH := handlers.NewAnalyzeHandler(cfg.Analyzer, cfg.MaxUploadBytes)
	v1.POST("/analyze", analyzeH.Analyze)

	historyH := handlers.NewHistoryHandler(cfg.History)
	v1.GET("/history", historyH.List)
	v1.GET("/history/summary", historyH.Summary)

	return r
}
