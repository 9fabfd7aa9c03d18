package handler

import (
	"net/http"

	"nlpbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// ParseHandler proxies live utterances to the trained agent
type ParseHandler struct {
	trainer *service.TrainerService
}

// NewParseHandler creates a new parse handler
func NewParseHandler(trainer *service.TrainerService) *ParseHandler {
	return &ParseHandler{trainer: trainer}
}

// ParseRequest is the body of POST /api/v1/parse
type ParseRequest struct {
	Utterance string `json:"utterance" binding:"required"`
}

// Parse handles POST /api/v1/parse
func (h *ParseHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.trainer.Parse(c.Request.Context(), req.Utterance)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Parse failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
