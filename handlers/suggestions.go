package handlers

import (
	"log"
	"net/http"

	"talkdata/models"

	"github.com/gin-gonic/gin"
)

// SuggestionsHandler returns recommended questions for a dataset
// @Summary      Get suggested questions
// @Description  Return up to four recommended questions for a dataset. Served from the persisted pool; set force_new to ask the language model for fresh ones.
// @Tags         Suggestions
// @Accept       json
// @Produce      json
// @Param        request  body      models.SuggestionsRequest   true  "Suggestions request"
// @Success      200      {object}  models.SuggestionsResponse  "Suggested questions"
// @Failure      400      {object}  map[string]string           "Invalid request"
// @Failure      404      {object}  map[string]string           "Dataset not found"
// @Failure      500      {object}  map[string]string           "Failed to load dataset"
// @Router       /api/chat/suggestions [post]
func (h *Handlers) SuggestionsHandler(c *gin.Context) {
	var req models.SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	meta, err := h.store.GetDataset(req.DatasetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dataset"})
		return
	}
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	if req.ForceNew {
		questions, err := h.suggestSvc.Refresh(c.Request.Context(), meta, true)
		if err != nil {
			// Refresh failures never reach the client; fall back to the
			// persisted pool (or the schema-derived defaults).
			log.Printf("[HANDLER] Suggestion refresh failed for dataset %s: %v", req.DatasetID, err)
			questions = h.suggestSvc.Get(c.Request.Context(), meta)
		}
		c.JSON(http.StatusOK, models.SuggestionsResponse{Questions: questions})
		return
	}

	questions := h.suggestSvc.Get(c.Request.Context(), meta)
	h.suggestSvc.RefreshAsync(meta)

	c.JSON(http.StatusOK, models.SuggestionsResponse{Questions: questions})
}
