package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ytfetch-go/internal/infrastructure"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	ytdlpBinary string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(ytdlpBinary string) *HealthHandler {
	return &HealthHandler{
		ytdlpBinary: ytdlpBinary,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

// Ready handles GET /ready. Readiness requires a resolvable yt-dlp binary,
// without which every download would fail.
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := infrastructure.FindYTDLP(h.ytdlpBinary); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
