package handler

import (
	"net/http"
	"strconv"

	"nlpbridge/internal/repository"

	"github.com/gin-gonic/gin"
)

// MonitorHandler exposes the recognition monitor over REST
type MonitorHandler struct {
	repo         *repository.PostgresRepository
	defaultLimit int
	maxLimit     int
}

// NewMonitorHandler creates a new monitor handler
func NewMonitorHandler(repo *repository.PostgresRepository, defaultLimit, maxLimit int) *MonitorHandler {
	return &MonitorHandler{
		repo:         repo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Logs handles GET /api/v1/monitoring/logs
func (h *MonitorHandler) Logs(c *gin.Context) {
	limit := h.parseLimit(c)
	logs, err := h.repo.RecentRecognitions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

// Builds handles GET /api/v1/monitoring/builds
func (h *MonitorHandler) Builds(c *gin.Context) {
	limit := h.parseLimit(c)
	builds, err := h.repo.RecentTrainingBuilds(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch builds: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"builds": builds, "count": len(builds)})
}

// Analytics handles GET /api/v1/monitoring/analytics
func (h *MonitorHandler) Analytics(c *gin.Context) {
	analytics, err := h.repo.RecognitionAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (h *MonitorHandler) parseLimit(c *gin.Context) int {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	return limit
}
