package fba_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pathway-screen/internal/fba"
	"pathway-screen/internal/model"
)

// linearChain builds: R_in: -> a (0..10), R_out: a -> (0..8, objective).
// Mass balance forces v_in = v_out, so the optimum is 8.
func linearChain(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("chain")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "a_c", Compartment: "c"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "R_in",
		UpperBound:  10,
		Metabolites: map[string]float64{"a_c": 1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "R_out",
		UpperBound:           8,
		Metabolites:          map[string]float64{"a_c": -1},
		ObjectiveCoefficient: 1,
	}))
	return m
}

// branched builds a network where metabolite a feeds both a growth sink and a
// product sink, so the two compete for the same 10 units of uptake.
func branched(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("branched")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "a_c", Compartment: "c"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "R_in",
		UpperBound:  10,
		Metabolites: map[string]float64{"a_c": 1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "R_growth",
		UpperBound:           1000,
		Metabolites:          map[string]float64{"a_c": -1},
		ObjectiveCoefficient: 1,
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "R_product",
		UpperBound:  1000,
		Metabolites: map[string]float64{"a_c": -1},
	}))
	return m
}

func TestOptimizeLinearChain(t *testing.T) {
	m := linearChain(t)
	sol, err := fba.Optimize(m, fba.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fba.StatusOptimal, sol.Status)
	require.InDelta(t, 8.0, sol.Objective, 1e-6)
	require.InDelta(t, 8.0, sol.Fluxes["R_in"], 1e-6)
	require.InDelta(t, 8.0, sol.Fluxes["R_out"], 1e-6)
}

func TestOptimizeWithNegativeLowerBound(t *testing.T) {
	// Exchange convention: EX_a: a -> nothing, negative flux = uptake.
	m := model.New("exchange")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "a_e", Compartment: "e"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "EX_a",
		LowerBound:  -10,
		UpperBound:  0,
		Metabolites: map[string]float64{"a_e": -1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "R_growth",
		UpperBound:           1000,
		Metabolites:          map[string]float64{"a_e": -1},
		ObjectiveCoefficient: 1,
	}))

	sol, err := fba.Optimize(m, fba.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fba.StatusOptimal, sol.Status)
	require.InDelta(t, 10.0, sol.Objective, 1e-6)
	require.InDelta(t, -10.0, sol.Fluxes["EX_a"], 1e-6)
}

func TestOptimizeConservedCofactorCouple(t *testing.T) {
	// The atp and adp mass-balance rows are exact negatives of each other
	// (a conserved moiety), so S is rank deficient the way every real
	// network is. The redundant row must not reach the simplex solver.
	m := model.New("cofactor")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "a_c", Compartment: "c"}))
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "atp_c", Compartment: "c"}))
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "adp_c", Compartment: "c"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "EX_a",
		LowerBound:  -10,
		UpperBound:  0,
		Metabolites: map[string]float64{"a_c": -1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "R_use",
		UpperBound:           1000,
		Metabolites:          map[string]float64{"a_c": -1, "atp_c": -1, "adp_c": 1},
		ObjectiveCoefficient: 1,
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "R_regen",
		UpperBound:  1000,
		Metabolites: map[string]float64{"adp_c": -1, "atp_c": 1},
	}))

	sol, err := fba.Optimize(m, fba.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fba.StatusOptimal, sol.Status)
	require.InDelta(t, 10.0, sol.Objective, 1e-6)
	require.InDelta(t, 10.0, sol.Fluxes["R_regen"], 1e-6)
}

func TestOptimizeStoichiometricCoefficients(t *testing.T) {
	// 2 a -> b, so b output is limited to half the a supply.
	m := model.New("coef")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "a_c", Compartment: "c"}))
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "b_c", Compartment: "c"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "R_in",
		UpperBound:  10,
		Metabolites: map[string]float64{"a_c": 1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:          "R_conv",
		UpperBound:  1000,
		Metabolites: map[string]float64{"a_c": -2, "b_c": 1},
	}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "R_out",
		UpperBound:           1000,
		Metabolites:          map[string]float64{"b_c": -1},
		ObjectiveCoefficient: 1,
	}))

	sol, err := fba.Optimize(m, fba.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fba.StatusOptimal, sol.Status)
	require.InDelta(t, 5.0, sol.Objective, 1e-6)
	require.InDelta(t, 10.0, sol.Fluxes["R_in"], 1e-6)
	require.InDelta(t, 5.0, sol.Fluxes["R_conv"], 1e-6)
}

func TestOptimizeInfeasible(t *testing.T) {
	// Forced production with no consumer: v >= 5 but mass balance wants 0.
	m := model.New("stuck")
	require.NoError(t, m.AddMetabolite(&model.Metabolite{ID: "a_c", Compartment: "c"}))
	require.NoError(t, m.AddReaction(&model.Reaction{
		ID:                   "R_in",
		LowerBound:           5,
		UpperBound:           10,
		Metabolites:          map[string]float64{"a_c": 1},
		ObjectiveCoefficient: 1,
	}))

	sol, err := fba.Optimize(m, fba.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fba.StatusInfeasible, sol.Status)
}

func TestOptimizeNoObjective(t *testing.T) {
	m := linearChain(t)
	r, _ := m.Reaction("R_out")
	r.ObjectiveCoefficient = 0
	_, err := fba.Optimize(m, fba.DefaultOptions())
	require.ErrorIs(t, err, fba.ErrNoObjective)
}

func TestOptimizeClampsInfiniteBounds(t *testing.T) {
	m := linearChain(t)
	in, _ := m.Reaction("R_in")
	out, _ := m.Reaction("R_out")
	in.UpperBound = 1e9
	out.UpperBound = 1e9

	opts := fba.DefaultOptions()
	opts.BigBound = 100
	sol, err := fba.Optimize(m, opts)
	require.NoError(t, err)
	require.Equal(t, fba.StatusOptimal, sol.Status)
	require.InDelta(t, 100.0, sol.Objective, 1e-6)
}

func TestOptimizeReaction(t *testing.T) {
	m := branched(t)
	sol, err := fba.OptimizeReaction(m, "R_product", fba.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, fba.StatusOptimal, sol.Status)
	require.InDelta(t, 10.0, sol.Objective, 1e-6)

	_, err = fba.OptimizeReaction(m, "R_missing", fba.DefaultOptions())
	require.ErrorContains(t, err, "not in model")
}

func TestProductionQuery(t *testing.T) {
	m := branched(t)
	res, err := fba.ProductionQuery(m, "R_product", 0.5, fba.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, fba.StatusOptimal, res.Growth.Status)
	require.InDelta(t, 10.0, res.Growth.Objective, 1e-6)

	// Half the optimum growth is pinned, leaving 5 units for product.
	require.InDelta(t, 5.0, res.GrowthFloor, 1e-6)
	require.Equal(t, fba.StatusOptimal, res.Production.Status)
	require.InDelta(t, 5.0, res.Production.Objective, 1e-6)
	require.InDelta(t, 5.0, res.Production.Fluxes["R_growth"], 1e-6)

	// The query must not mutate the input model.
	growth, _ := m.Reaction("R_growth")
	require.Zero(t, growth.LowerBound)
}

func TestProductionQueryTargetMissing(t *testing.T) {
	m := branched(t)
	_, err := fba.ProductionQuery(m, "R_missing", 0.5, fba.DefaultOptions())
	require.ErrorContains(t, err, "not in model")
}

func TestFluxVariability(t *testing.T) {
	m := branched(t)
	ranges, err := fba.FluxVariability(m, []string{"R_product", "R_growth"}, 0.5, fba.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	prod := ranges[0]
	require.Equal(t, "R_product", prod.ReactionID)
	require.Equal(t, fba.StatusOptimal, prod.Status)
	require.InDelta(t, 0.0, prod.Min, 1e-6)
	require.InDelta(t, 5.0, prod.Max, 1e-6)

	growth := ranges[1]
	require.InDelta(t, 5.0, growth.Min, 1e-6)
	require.InDelta(t, 10.0, growth.Max, 1e-6)
}

func TestStoichiometry(t *testing.T) {
	m := linearChain(t)
	s := fba.Stoichiometry(m)
	require.NotNil(t, s)
	r, c := s.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 2, c)
	require.Equal(t, 1.0, s.At(0, 0))
	require.Equal(t, -1.0, s.At(0, 1))
}
