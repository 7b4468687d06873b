package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/domain"
)

// SummaryHandler handles transcript summarization HTTP requests
type SummaryHandler struct {
	summarizer *app.Summarizer
	logger     *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summarizer *app.Summarizer, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		summarizer: summarizer,
		logger:     logger,
	}
}

// SummarizeRequest represents a request to summarize a video
type SummarizeRequest struct {
	URL   string `json:"url" binding:"required"`
	Depth string `json:"depth,omitempty"`
	Model string `json:"model,omitempty"`
}

// SummarizeResponse is the generated summary
type SummarizeResponse struct {
	VideoID string `json:"video_id"`
	Depth   string `json:"depth"`
	Summary string `json:"summary"`
}

// Summarize handles POST /api/v1/summaries
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := domain.ValidateURL(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), req.URL, domain.SummaryDepth(req.Depth), req.Model)
	if err != nil {
		var optErr *domain.InvalidOptionError
		if errors.As(err, &optErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Summarization failed", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	depth := req.Depth
	if depth == "" {
		depth = string(domain.DepthDetailed)
	}
	c.JSON(http.StatusOK, SummarizeResponse{
		VideoID: domain.VideoID(req.URL),
		Depth:   depth,
		Summary: summary,
	})
}
