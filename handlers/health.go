package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Check the health status of all services (store, AI service, query engine)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	status := gin.H{
		"status":       "healthy",
		"store":        "connected",
		"ai_service":   "ready",
		"query_engine": "not_configured",
	}

	if h.engine != nil && h.engine.IsConnected() {
		status["query_engine"] = "connected"
	}

	c.JSON(http.StatusOK, status)
}
