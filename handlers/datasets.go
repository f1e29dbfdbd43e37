package handlers

import (
	"net/http"

	"talkdata/models"

	"github.com/gin-gonic/gin"
)

// ListDatasetsHandler lists all registered dataset versions
// @Summary      List datasets
// @Tags         Datasets
// @Produce      json
// @Success      200  {array}   models.DatasetMeta
// @Failure      500  {object}  map[string]string  "Failed to list datasets"
// @Router       /api/datasets [get]
func (h *Handlers) ListDatasetsHandler(c *gin.Context) {
	datasets, err := h.store.ListDatasets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list datasets"})
		return
	}

	if datasets == nil {
		datasets = []models.DatasetMeta{}
	}
	c.JSON(http.StatusOK, datasets)
}

// GetDatasetHandler returns one dataset's metadata
// @Summary      Get dataset
// @Tags         Datasets
// @Produce      json
// @Param        dataset_id  path      string  true  "Dataset ID"
// @Success      200         {object}  models.DatasetMeta
// @Failure      404         {object}  map[string]string  "Dataset not found"
// @Router       /api/datasets/{dataset_id} [get]
func (h *Handlers) GetDatasetHandler(c *gin.Context) {
	datasetID := c.Param("dataset_id")

	meta, err := h.store.GetDataset(datasetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dataset"})
		return
	}
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	c.JSON(http.StatusOK, meta)
}
