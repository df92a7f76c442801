package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"pathway-screen/internal/api/models"
	"pathway-screen/internal/data"
	"pathway-screen/internal/fba"
	"pathway-screen/internal/model"

	"github.com/gin-gonic/gin"
)

// FBAHandler handles single-optimization requests
type FBAHandler struct {
	bigg *data.BiGGClient
}

// NewFBAHandler creates a new FBA handler
func NewFBAHandler(bigg *data.BiGGClient) *FBAHandler {
	if bigg == nil {
		bigg = data.NewBiGGClient("")
	}
	return &FBAHandler{bigg: bigg}
}

// RunFBA handles POST /api/v1/fba
func (h *FBAHandler) RunFBA(c *gin.Context) {
	var req models.FBARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	m, ok := loadModel(c, h.bigg, req.Model)
	if !ok {
		return
	}

	opts := solverOptions(req.Solver)
	var sol *fba.Solution
	var err error
	if req.Reaction != "" {
		sol, err = fba.OptimizeReaction(m, req.Reaction, opts)
	} else {
		sol, err = fba.Optimize(m, opts)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FBA_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.FBAResponse{
		Status:    string(sol.Status),
		Objective: sol.Objective,
	}
	if req.Options.IncludeFluxes {
		resp.Fluxes = sol.Fluxes
	}
	c.JSON(http.StatusOK, resp)
}

// Shared helpers

// loadModel resolves a ModelSource into a parsed model. On failure it writes
// the error response and returns ok=false.
func loadModel(c *gin.Context, bigg *data.BiGGClient, src models.ModelSource) (*model.Model, bool) {
	if (src.BiGGID == "") == (len(src.JSON) == 0) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_MODEL_SOURCE",
				Message: "exactly one of model.bigg_id and model.json must be set",
			},
		})
		return nil, false
	}

	if src.BiGGID != "" {
		m, err := bigg.DownloadModel(src.BiGGID)
		if err != nil {
			var biggErr *data.BiGGError
			if errors.As(err, &biggErr) {
				statusCode := http.StatusBadGateway
				if biggErr.StatusCode == http.StatusNotFound {
					statusCode = http.StatusNotFound
				}
				c.JSON(statusCode, models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    biggErr.Code,
						Message: biggErr.Message,
						Details: map[string]interface{}{
							"status_code": biggErr.StatusCode,
							"bigg_id":     src.BiGGID,
						},
					},
				})
				return nil, false
			}
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "MODEL_FETCH_ERROR",
					Message: err.Error(),
				},
			})
			return nil, false
		}
		return m, true
	}

	m, err := data.ParseModelJSON(src.JSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_MODEL",
				Message: fmt.Sprintf("parse model: %v", err),
			},
		})
		return nil, false
	}
	return m, true
}

func solverOptions(s models.SolverOptions) fba.Options {
	opts := fba.DefaultOptions()
	if s.Tolerance > 0 {
		opts.Tolerance = s.Tolerance
	}
	if s.BigBound > 0 {
		opts.BigBound = s.BigBound
	}
	return opts
}
