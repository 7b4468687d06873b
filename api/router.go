package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/api/handlers"
	"github.com/yourusername/ytfetch-go/api/middleware"
	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/domain"
)

// SetupRouter sets up the HTTP router. summarizer and repo may be nil when
// the corresponding feature is not configured; their routes are then left
// unregistered.
func SetupRouter(
	batches *app.BatchService,
	summarizer *app.Summarizer,
	repo domain.DownloadRepository,
	config *domain.Config,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	healthHandler := handlers.NewHealthHandler(config.Download.YTDLPBinary)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		batchHandler := handlers.NewBatchHandler(batches, config.Download.DefaultFormat, config.Download.DefaultQuality, log)
		batchRoutes := v1.Group("/batches")
		{
			batchRoutes.POST("", batchHandler.SubmitBatch)
			batchRoutes.GET("", batchHandler.ListBatches)
			batchRoutes.GET("/:id", batchHandler.GetBatch)
			batchRoutes.POST("/:id/cancel", batchHandler.CancelBatch)
		}

		if summarizer != nil {
			summaryHandler := handlers.NewSummaryHandler(summarizer, log)
			v1.POST("/summaries", summaryHandler.Summarize)
		}

		if repo != nil {
			historyHandler := handlers.NewHistoryHandler(repo, log)
			v1.GET("/history", historyHandler.ListHistory)
			v1.GET("/history/stats", historyHandler.GetStats)
		}
	}

	return router
}
