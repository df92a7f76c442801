package handlers

import (
	"net/http"
	"strings"

	"pathway-screen/internal/api/models"
	"pathway-screen/internal/data"
	"pathway-screen/internal/pathway"
	"pathway-screen/internal/screen"

	"github.com/gin-gonic/gin"
)

// ScreenHandler handles variant-screen requests
type ScreenHandler struct {
	bigg *data.BiGGClient
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(bigg *data.BiGGClient) *ScreenHandler {
	if bigg == nil {
		bigg = data.NewBiGGClient("")
	}
	return &ScreenHandler{bigg: bigg}
}

// RunScreen handles POST /api/v1/screen
func (h *ScreenHandler) RunScreen(c *gin.Context) {
	var req models.ScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	base, ok := loadModel(c, h.bigg, req.Model)
	if !ok {
		return
	}

	variants, err := buildVariants(req.Variants)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_VARIANT",
				Message: err.Error(),
			},
		})
		return
	}

	growthFraction := req.GrowthFraction
	if growthFraction == 0 {
		growthFraction = 0.5
	}

	engine := screen.New(solverOptions(req.Solver))
	result, _, err := engine.Run(base, variants, screen.Params{
		Target:         req.Target,
		Uptake:         req.Uptake,
		GrowthFraction: growthFraction,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SCREEN_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, buildScreenResponse(result, req.Options.IncludeLedgers))
}

func buildVariants(specs []models.VariantSpec) ([]screen.Variant, error) {
	variants := make([]screen.Variant, 0, len(specs))
	for _, spec := range specs {
		v := screen.Variant{Name: spec.Name, Knockouts: spec.Knockouts, Bounds: spec.Bounds}
		if spec.MetabolitesCSV != "" || spec.ReactionsCSV != "" {
			p := &pathway.Pathway{Name: spec.Name}
			if spec.MetabolitesCSV != "" {
				mets, err := pathway.ParseMetabolitesCSV(strings.NewReader(spec.MetabolitesCSV))
				if err != nil {
					return nil, err
				}
				p.Metabolites = mets
			}
			if spec.ReactionsCSV != "" {
				rxns, err := pathway.ParseReactionsCSV(strings.NewReader(spec.ReactionsCSV))
				if err != nil {
					return nil, err
				}
				p.Reactions = rxns
			}
			v.Pathway = p
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func buildScreenResponse(result *screen.Result, includeLedgers bool) models.ScreenResponse {
	resp := models.ScreenResponse{
		Status:  "completed",
		Reports: make([]models.VariantReport, 0, len(result.Reports)),
	}
	for _, r := range result.Reports {
		resp.Reports = append(resp.Reports, models.VariantReport{
			Variant:          r.Variant,
			Status:           string(r.Status),
			MetabolitesAdded: r.MetabolitesAdded,
			ReactionsAdded:   r.ReactionsAdded,
			Knockouts:        r.Knockouts,
			Growth:           r.Growth,
			GrowthFloor:      r.GrowthFloor,
			ProductFlux:      r.ProductFlux,
			UptakeFlux:       r.UptakeFlux,
			Yield:            r.Yield,
		})
	}
	if includeLedgers {
		resp.Ledgers = make(map[string][]models.FluxRow, len(result.Ledgers))
		for name, rows := range result.Ledgers {
			converted := make([]models.FluxRow, len(rows))
			for i, row := range rows {
				converted[i] = models.FluxRow{
					ReactionID:     row.ReactionID,
					Name:           row.Name,
					Subsystem:      row.Subsystem,
					LowerBound:     row.LowerBound,
					UpperBound:     row.UpperBound,
					GrowthFlux:     row.GrowthFlux,
					ProductionFlux: row.ProductionFlux,
				}
			}
			resp.Ledgers[name] = converted
		}
	}
	return resp
}
