package handlers

import (
	"log"
	"net/http"

	"talkdata/engine"
	"talkdata/intent"
	"talkdata/models"

	"github.com/gin-gonic/gin"
)

// ExecuteQueryHandler runs a raw SELECT against a dataset
// @Summary      Execute query
// @Description  Run a read-only SQL query against a dataset's table. The logical table is always named "data"; mutations are rejected.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryExecuteRequest   true  "Query execution request"
// @Success      200      {object}  models.QueryExecuteResponse  "Query result"
// @Failure      400      {object}  map[string]string            "Invalid request or non-SELECT query"
// @Failure      404      {object}  map[string]string            "Dataset not found"
// @Failure      503      {object}  map[string]string            "Query engine not configured"
// @Failure      500      {object}  map[string]string            "Query execution error"
// @Router       /api/query/execute [post]
func (h *Handlers) ExecuteQueryHandler(c *gin.Context) {
	var req models.QueryExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Query engine is not configured"})
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

	if err := engine.ValidateSelect(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.Execute(c.Request.Context(), meta.TableLocation, req.Query)
	if err != nil {
		log.Printf("Error executing query on dataset %s: %v", req.DatasetID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query execution failed"})
		return
	}

	c.JSON(http.StatusOK, toExecuteResponse(result))
}

// toExecuteResponse flattens row maps into positional rows so clients get
// cells in projection order.
func toExecuteResponse(result *models.QueryResult) models.QueryExecuteResponse {
	rows := make([][]interface{}, len(result.Rows))
	for i, row := range result.Rows {
		cells := make([]interface{}, len(result.Columns))
		for j, col := range result.Columns {
			cells[j] = row[col]
		}
		rows[i] = cells
	}
	return models.QueryExecuteResponse{
		Columns:   result.Columns,
		Rows:      rows,
		TotalRows: len(rows),
	}
}

// AssistQueryHandler generates SQL from a natural-language prompt
// @Summary      Generate SQL for the query editor
// @Description  Turn a natural-language prompt into a SELECT statement against the dataset's "data" table, without executing it.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryAssistRequest   true  "Assist request"
// @Success      200      {object}  models.QueryAssistResponse  "Generated query"
// @Failure      400      {object}  map[string]string           "Invalid request or prompt not about the data"
// @Failure      404      {object}  map[string]string           "Dataset not found"
// @Failure      500      {object}  map[string]string           "Failed to generate query"
// @Router       /api/query/assist [post]
func (h *Handlers) AssistQueryHandler(c *gin.Context) {
	var req models.QueryAssistRequest
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

	switch intent.Classify(req.Prompt, meta) {
	case intent.Query, intent.Metadata, intent.Explanation:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt does not look like a question about the data"})
		return
	}

	query, err := h.aiService.GenerateSQL(c.Request.Context(), meta, req.Prompt)
	if err != nil {
		log.Printf("Error generating query for dataset %s: %v", req.DatasetID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate query"})
		return
	}

	c.JSON(http.StatusOK, models.QueryAssistResponse{Query: query})
}
