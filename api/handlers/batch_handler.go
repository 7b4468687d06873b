package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/domain"
)

// BatchHandler handles batch download HTTP requests
type BatchHandler struct {
	batches        *app.BatchService
	defaultFormat  domain.Format
	defaultQuality domain.Quality
	logger         *zap.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batches *app.BatchService, defaultFormat domain.Format, defaultQuality domain.Quality, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		batches:        batches,
		defaultFormat:  defaultFormat,
		defaultQuality: defaultQuality,
		logger:         logger,
	}
}

// SubmitBatchRequest represents a request to start a batch download
type SubmitBatchRequest struct {
	Videos []SubmitBatchVideo `json:"videos" binding:"required,min=1"`
	// Format and Quality are batch-level defaults for entries that leave
	// them empty.
	Format  string `json:"format,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// SubmitBatchVideo is one video inside a batch submission
type SubmitBatchVideo struct {
	URL     string `json:"url" binding:"required"`
	Format  string `json:"format,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// SubmitBatch handles POST /api/v1/batches
func (h *BatchHandler) SubmitBatch(c *gin.Context) {
	var req SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batchFormat := h.defaultFormat
	if req.Format != "" {
		batchFormat = domain.Format(req.Format)
	}
	batchQuality := h.defaultQuality
	if req.Quality != "" {
		batchQuality = domain.Quality(req.Quality)
	}

	requests := make([]domain.DownloadRequest, 0, len(req.Videos))
	for _, video := range req.Videos {
		format := batchFormat
		if video.Format != "" {
			format = domain.Format(video.Format)
		}
		quality := batchQuality
		if video.Quality != "" {
			quality = domain.Quality(video.Quality)
		}
		request, err := domain.NewDownloadRequest(video.URL, format, quality)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "url": video.URL})
			return
		}
		requests = append(requests, request)
	}

	run := h.batches.Submit(requests)
	h.logger.Info("Batch submitted",
		zap.String("id", run.ID),
		zap.Int("total", run.Total))
	c.JSON(http.StatusAccepted, run)
}

// GetBatch handles GET /api/v1/batches/:id
func (h *BatchHandler) GetBatch(c *gin.Context) {
	run, ok := h.batches.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListBatches handles GET /api/v1/batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	c.JSON(http.StatusOK, h.batches.List())
}

// CancelBatch handles POST /api/v1/batches/:id/cancel
func (h *BatchHandler) CancelBatch(c *gin.Context) {
	if err := h.batches.Cancel(c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelling"})
}
