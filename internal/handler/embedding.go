package handler

import (
	"net/http"

	"nlpbridge/internal/model"
	"nlpbridge/internal/repository"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler handles example-embedding HTTP requests. Vectors are
// computed by the caller; this service only stores and queries them.
type EmbeddingHandler struct {
	repo *repository.PostgresRepository
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(repo *repository.PostgresRepository) *EmbeddingHandler {
	return &EmbeddingHandler{repo: repo}
}

// BatchUpdate handles POST /api/v1/examples/embeddings
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	success, errors := h.repo.BatchUpsertExampleEmbeddings(c.Request.Context(), req.Embeddings)
	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"failed":  len(req.Embeddings) - success,
		"errors":  errors,
	})
}

// Similar handles POST /api/v1/examples/similar
func (h *EmbeddingHandler) Similar(c *gin.Context) {
	var req model.SimilarExamplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Limit <= 0 {
		req.Limit = 10
	}

	examples, err := h.repo.SimilarExamples(c.Request.Context(), req.Embedding, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch similar examples: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"examples": examples, "count": len(examples)})
}
