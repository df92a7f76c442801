package screen_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pathway-screen/internal/fba"
	"pathway-screen/internal/model"
	"pathway-screen/internal/pathway"
	"pathway-screen/internal/screen"
)

// hostModel: substrate enters through EX_glc (uptake up to 10), feeds growth.
// Pathways tap the same substrate pool for product.
func hostModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("host")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "glc_c", Compartment: "c"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "EX_glc",
		Name:        "Glucose exchange",
		LowerBound:  -10,
		UpperBound:  0,
		Metabolites: map[string]float64{"glc_c": -1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "GROWTH",
		Name:                 "Biomass",
		UpperBound:           1000,
		Metabolites:          map[string]float64{"glc_c": -1},
		ObjectiveCoefficient: 1,
	}))
	return m
}

func productPathway(coefficient float64) *pathway.Pathway {
	return &pathway.Pathway{
		Name: "product",
		Metabolites: []*model.Metabolite{
			{ID: "prod_c", Compartment: "c"},
		},
		Reactions: []*model.Reaction{
			{
				ID:          "PSYN",
				UpperBound:  1000,
				GeneRule:    "synA",
				Metabolites: map[string]float64{"glc_c": -1, "prod_c": coefficient},
			},
			{
				ID:          "EX_prod",
				UpperBound:  1000,
				Metabolites: map[string]float64{"prod_c": -1},
			},
		},
	}
}

func TestEngineRun(t *testing.T) {
	base := hostModel(t)
	engine := screen.New(fba.DefaultOptions())

	variants := []screen.Variant{
		{Name: "one-to-one", Pathway: productPathway(1)},
		{Name: "half-yield", Pathway: productPathway(0.5)},
	}
	result, models, err := engine.Run(base, variants, screen.Params{
		Target:         "EX_prod",
		Uptake:         "EX_glc",
		GrowthFraction: 0.5,
	})
	require.NoError(t, err)
	require.Len(t, result.Reports, 2)

	first := result.Reports[0]
	require.Equal(t, "one-to-one", first.Variant)
	require.Equal(t, fba.StatusOptimal, first.Status)
	require.InDelta(t, 10.0, first.Growth, 1e-6)
	require.InDelta(t, 5.0, first.GrowthFloor, 1e-6)
	require.InDelta(t, 5.0, first.ProductFlux, 1e-6)
	require.InDelta(t, -10.0, first.UptakeFlux, 1e-6)
	require.InDelta(t, 0.5, first.Yield, 1e-6)
	require.Equal(t, 1, first.MetabolitesAdded)
	require.Equal(t, 2, first.ReactionsAdded)

	second := result.Reports[1]
	require.InDelta(t, 2.5, second.ProductFlux, 1e-6)

	// Ledgers cover every reaction of the modified model.
	require.Len(t, result.Ledgers["one-to-one"], 4)

	// The base model is untouched; variant models carry the graft.
	_, ok := base.Reaction("PSYN")
	require.False(t, ok)
	_, ok = models["one-to-one"].Reaction("PSYN")
	require.True(t, ok)
}

func TestEngineRunBoundOverride(t *testing.T) {
	base := hostModel(t)
	engine := screen.New(fba.DefaultOptions())

	variants := []screen.Variant{
		{Name: "full-uptake", Pathway: productPathway(1)},
		{
			Name:    "limited-uptake",
			Pathway: productPathway(1),
			Bounds:  map[string][2]float64{"EX_glc": {-4, 0}},
		},
	}
	result, _, err := engine.Run(base, variants, screen.Params{
		Target:         "EX_prod",
		GrowthFraction: 0.5,
	})
	require.NoError(t, err)

	require.InDelta(t, 10.0, result.Reports[0].Growth, 1e-6)
	require.InDelta(t, 4.0, result.Reports[1].Growth, 1e-6)
	require.InDelta(t, 2.0, result.Reports[1].ProductFlux, 1e-6)

	// The override applies per variant; the base model keeps its bounds.
	ex, ok := base.Reaction("EX_glc")
	require.True(t, ok)
	require.InDelta(t, -10.0, ex.LowerBound, 1e-12)

	_, _, err = engine.Run(base, []screen.Variant{
		{Name: "bad", Pathway: productPathway(1), Bounds: map[string][2]float64{"NOPE": {0, 1}}},
	}, screen.Params{Target: "EX_prod"})
	require.ErrorContains(t, err, "unknown reaction NOPE")

	_, _, err = engine.Run(base, []screen.Variant{
		{Name: "inverted", Pathway: productPathway(1), Bounds: map[string][2]float64{"EX_glc": {1, -1}}},
	}, screen.Params{Target: "EX_prod"})
	require.ErrorContains(t, err, "exceeds upper bound")
}

func TestEngineRunKnockout(t *testing.T) {
	base := hostModel(t)
	engine := screen.New(fba.DefaultOptions())

	variants := []screen.Variant{
		{Name: "with-pathway", Pathway: productPathway(1)},
		{Name: "knocked-out", Pathway: productPathway(1), Knockouts: []string{"synA"}},
	}
	result, _, err := engine.Run(base, variants, screen.Params{
		Target:         "EX_prod",
		GrowthFraction: 0.5,
	})
	require.NoError(t, err)

	// Knocking out synA closes PSYN, so no product can form.
	require.InDelta(t, 5.0, result.Reports[0].ProductFlux, 1e-6)
	require.Equal(t, fba.StatusOptimal, result.Reports[1].Status)
	require.InDelta(t, 0.0, result.Reports[1].ProductFlux, 1e-6)
}

func TestEngineRunValidation(t *testing.T) {
	base := hostModel(t)
	engine := screen.New(fba.DefaultOptions())

	_, _, err := engine.Run(base, nil, screen.Params{Target: "EX_prod"})
	require.ErrorContains(t, err, "no variants")

	_, _, err = engine.Run(base, []screen.Variant{{Name: "v"}}, screen.Params{})
	require.ErrorContains(t, err, "target reaction is required")

	// A variant without the pathway does not have the target reaction.
	_, _, err = engine.Run(base, []screen.Variant{{Name: "v"}}, screen.Params{Target: "EX_prod"})
	require.ErrorContains(t, err, "not in model")
}

func TestWriteSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	reports := []screen.Report{
		{
			Variant:          "v1",
			Status:           fba.StatusOptimal,
			MetabolitesAdded: 1,
			ReactionsAdded:   2,
			Knockouts:        []string{"g1", "g2"},
			Growth:           10,
			GrowthFloor:      5,
			ProductFlux:      5,
			UptakeFlux:       -10,
			Yield:            0.5,
		},
	}
	require.NoError(t, screen.WriteSummaryCSV(path, reports))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "variant", rows[0][0])
	require.Equal(t, "v1", rows[1][0])
	require.Equal(t, "optimal", rows[1][1])
	require.Equal(t, "g1;g2", rows[1][4])
	require.Equal(t, "5.000000", rows[1][7])

	back, err := screen.ReadSummaryCSV(path)
	require.NoError(t, err)
	require.Len(t, back, 1)
	require.Equal(t, reports[0].Variant, back[0].Variant)
	require.Equal(t, reports[0].Knockouts, back[0].Knockouts)
	require.InDelta(t, reports[0].Yield, back[0].Yield, 1e-9)
}

func TestReadSummaryCSVMissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	row := "v1,optimal,1,2,g1,10.000000,5.000000,5.000000,-10.000000,0.500000\n"
	require.NoError(t, os.WriteFile(path, []byte(row), 0o644))

	_, err := screen.ReadSummaryCSV(path)
	require.ErrorContains(t, err, "missing summary header")
}

func TestWriteFluxCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flux.csv")
	rows := []screen.FluxRow{
		{ReactionID: "R1", Name: "first", LowerBound: -10, UpperBound: 10, GrowthFlux: 3, ProductionFlux: 1.5},
	}
	require.NoError(t, screen.WriteFluxCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "R1", got[1][0])
	require.Equal(t, "1.500000", got[1][6])
}
