package handlers

import (
	"errors"
	"net/http"

	"pathway-screen/internal/api/models"
	"pathway-screen/internal/data"

	"github.com/gin-gonic/gin"
)

// CatalogueHandler serves the published model catalogue
type CatalogueHandler struct {
	bigg *data.BiGGClient
}

// NewCatalogueHandler creates a new catalogue handler
func NewCatalogueHandler(bigg *data.BiGGClient) *CatalogueHandler {
	if bigg == nil {
		bigg = data.NewBiGGClient("")
	}
	return &CatalogueHandler{bigg: bigg}
}

// ListModels handles GET /api/v1/models
func (h *CatalogueHandler) ListModels(c *gin.Context) {
	summaries, err := h.bigg.ListModels()
	if err != nil {
		var biggErr *data.BiGGError
		if errors.As(err, &biggErr) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    biggErr.Code,
					Message: biggErr.Message,
					Details: map[string]interface{}{
						"status_code": biggErr.StatusCode,
					},
				},
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CATALOGUE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	infos := make([]models.ModelInfo, len(summaries))
	for i, s := range summaries {
		infos[i] = models.ModelInfo{
			ID:              s.BiGGID,
			Organism:        s.Organism,
			MetaboliteCount: s.MetaboliteCount,
			ReactionCount:   s.ReactionCount,
			GeneCount:       s.GeneCount,
		}
	}
	c.JSON(http.StatusOK, gin.H{"models": infos})
}
