package handlers

import (
	"net/http"

	"pathway-screen/internal/analysis"
	"pathway-screen/internal/api/models"

	"github.com/gin-gonic/gin"
)

// RankHandler ranks variant scores
type RankHandler struct{}

// NewRankHandler creates a new rank handler
func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// RankVariants handles POST /api/v1/rank
func (h *RankHandler) RankVariants(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	scores := make([]analysis.VariantScore, len(req.Scores))
	for i, s := range req.Scores {
		scores[i] = analysis.VariantScore{
			Variant:     s.Variant,
			Growth:      s.Growth,
			ProductFlux: s.ProductFlux,
			Yield:       s.Yield,
		}
	}

	ranked := analysis.RankByProductFlux(scores)
	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:        r.Rank,
			Variant:     r.Variant,
			Growth:      r.Growth,
			ProductFlux: r.ProductFlux,
			Yield:       r.Yield,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}
