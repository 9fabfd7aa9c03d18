package handler

import (
	"errors"
	"net/http"

	"nlpbridge/internal/compiler"
	"nlpbridge/internal/model"
	"nlpbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainHandler handles training-related HTTP requests
type TrainHandler struct {
	trainer *service.TrainerService
}

// NewTrainHandler creates a new train handler
func NewTrainHandler(trainer *service.TrainerService) *TrainHandler {
	return &TrainHandler{trainer: trainer}
}

// Train handles POST /api/v1/train
func (h *TrainHandler) Train(c *gin.Context) {
	var def model.BotDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(def.Intents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No intents provided"})
		return
	}

	report, err := h.trainer.TrainFromDefinition(c.Request.Context(), &def)
	if err != nil {
		var pe *compiler.PreconditionError
		if errors.As(err, &pe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid intent definition: " + err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Training failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Status handles GET /api/v1/train/status
func (h *TrainHandler) Status(c *gin.Context) {
	status, err := h.trainer.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get agent status: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
