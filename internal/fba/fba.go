// Package fba runs flux-balance analysis: linear optimization over reaction
// fluxes subject to steady-state mass balance (S·v = 0) and flux bounds.
// The linear program itself is handed to gonum's simplex solver; this package
// only assembles the program and maps the solution back onto reactions.
package fba

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"pathway-screen/internal/model"
)

// Status classifies the outcome of one optimization.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
)

// ErrNoObjective is returned when the model defines no objective reaction.
var ErrNoObjective = errors.New("fba: model has no objective reaction")

// fluxEpsilon is the magnitude below which a solved flux is reported as zero.
const fluxEpsilon = 1e-9

// Options configures the solver.
//   - Tolerance: simplex convergence tolerance.
//   - BigBound: magnitude used in place of infinite (or larger) bounds; 1000
//     is the flat-file convention.
type Options struct {
	Tolerance float64
	BigBound  float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-10,
		BigBound:  1000,
	}
}

// Solution is the result of one FBA query.
type Solution struct {
	Status    Status
	Objective float64
	Fluxes    map[string]float64
}

// Optimize maximizes the model's objective reactions subject to mass balance
// and bounds. Infeasible and unbounded programs are reported through
// Solution.Status, not as errors.
func Optimize(m *model.Model, opts Options) (*Solution, error) {
	objective := make([]float64, m.NumReactions())
	found := false
	for j, rxn := range m.Reactions() {
		if rxn.ObjectiveCoefficient != 0 {
			objective[j] = rxn.ObjectiveCoefficient
			found = true
		}
	}
	if !found {
		return nil, ErrNoObjective
	}
	return solve(m, objective, opts)
}

// OptimizeReaction maximizes the flux through a single reaction, ignoring
// the model's own objective coefficients.
func OptimizeReaction(m *model.Model, reactionID string, opts Options) (*Solution, error) {
	j, ok := reactionIndex(m, reactionID)
	if !ok {
		return nil, fmt.Errorf("fba: reaction %s not in model", reactionID)
	}
	objective := make([]float64, m.NumReactions())
	objective[j] = 1
	return solve(m, objective, opts)
}

// ProductionResult holds the two queries run per model variant.
type ProductionResult struct {
	// Growth maximizes the model objective (typically biomass).
	Growth *Solution
	// Production maximizes the target reaction with the growth objective
	// held at GrowthFloor.
	Production  *Solution
	GrowthFloor float64
}

// ProductionQuery runs the standard query pair: (1) maximize the growth
// objective, (2) pin growth at growthFraction of its optimum and maximize
// the target reaction. The model is not mutated. Requires a single objective
// reaction.
func ProductionQuery(m *model.Model, target string, growthFraction float64, opts Options) (*ProductionResult, error) {
	if _, ok := m.Reaction(target); !ok {
		return nil, fmt.Errorf("fba: target reaction %s not in model", target)
	}
	obj := m.Objective()
	if len(obj) == 0 {
		return nil, ErrNoObjective
	}
	if len(obj) > 1 {
		return nil, fmt.Errorf("fba: production query requires a single objective reaction, model has %d", len(obj))
	}

	growth, err := Optimize(m, opts)
	if err != nil {
		return nil, err
	}
	res := &ProductionResult{Growth: growth}
	if growth.Status != StatusOptimal {
		res.Production = &Solution{Status: growth.Status}
		return res, nil
	}

	constrained, floor := withGrowthFloor(m, obj[0].ID, growth.Objective, growthFraction)
	res.GrowthFloor = floor

	production, err := OptimizeReaction(constrained, target, opts)
	if err != nil {
		return nil, err
	}
	res.Production = production
	return res, nil
}

// withGrowthFloor copies m and raises the objective reaction's lower bound to
// fraction*optimum. A non-positive fraction leaves the copy unconstrained.
func withGrowthFloor(m *model.Model, objectiveID string, optimum, fraction float64) (*model.Model, float64) {
	cp := m.Copy()
	if fraction <= 0 {
		return cp, 0
	}
	rxn, _ := cp.Reaction(objectiveID)
	floor := fraction * optimum / rxn.ObjectiveCoefficient
	if floor > rxn.LowerBound {
		rxn.LowerBound = floor
	}
	return cp, floor
}

func reactionIndex(m *model.Model, id string) (int, bool) {
	for j, rxn := range m.Reactions() {
		if rxn.ID == id {
			return j, true
		}
	}
	return 0, false
}

// solve maximizes objective·v subject to S·v = 0 and the reaction bounds.
//
// The program is assembled in standard form by hand so the mapping back to
// fluxes stays explicit: each flux is shifted to y_j = v_j - lb_j >= 0 and a
// slack s_j enforces y_j + s_j = ub_j - lb_j. Variables are laid out as
// [y_1..y_n, s_1..s_n].
func solve(m *model.Model, objective []float64, opts Options) (*Solution, error) {
	n := m.NumReactions()
	if n == 0 {
		return nil, errors.New("fba: model has no reactions")
	}
	if opts.BigBound <= 0 {
		opts.BigBound = DefaultOptions().BigBound
	}

	lb := make([]float64, n)
	ub := make([]float64, n)
	for j, rxn := range m.Reactions() {
		lb[j] = clampBound(rxn.LowerBound, opts.BigBound)
		ub[j] = clampBound(rxn.UpperBound, opts.BigBound)
	}

	s := Stoichiometry(m)

	// The simplex solver requires full row rank, and real networks never have
	// it: conserved moieties (cofactor couples like atp/adp) make mass-balance
	// rows linearly dependent, and untouched metabolites contribute zero rows.
	// Dependent rows are redundant constraints, so keeping an independent
	// subset leaves the feasible set unchanged.
	var active []int
	if s != nil {
		active = independentRows(s, m.NumMetabolites(), n)
	}

	nRows := len(active) + n
	a := mat.NewDense(nRows, 2*n, nil)
	b := make([]float64, nRows)

	for k, i := range active {
		rhs := 0.0
		for j := 0; j < n; j++ {
			coef := s.At(i, j)
			a.Set(k, j, coef)
			rhs -= coef * lb[j]
		}
		b[k] = rhs
	}
	for j := 0; j < n; j++ {
		row := len(active) + j
		a.Set(row, j, 1)
		a.Set(row, n+j, 1)
		b[row] = ub[j] - lb[j]
	}

	c := make([]float64, 2*n)
	for j := 0; j < n; j++ {
		c[j] = -objective[j]
	}

	optF, x, err := lp.Simplex(c, a, b, opts.Tolerance, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &Solution{Status: StatusInfeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Solution{Status: StatusUnbounded}, nil
	case err != nil:
		return nil, fmt.Errorf("fba: simplex: %w", err)
	}

	sol := &Solution{
		Status: StatusOptimal,
		Fluxes: make(map[string]float64, n),
	}
	objVal := -optF
	for j, rxn := range m.Reactions() {
		v := x[j] + lb[j]
		if math.Abs(v) < fluxEpsilon {
			v = 0
		}
		sol.Fluxes[rxn.ID] = v
		objVal += objective[j] * lb[j]
	}
	if math.Abs(objVal) < fluxEpsilon {
		objVal = 0
	}
	sol.Objective = objVal
	return sol, nil
}

// pivotTol is the magnitude below which an eliminated row entry is treated
// as zero when testing for linear independence.
const pivotTol = 1e-9

// independentRows selects a maximal linearly independent subset of the
// mass-balance rows by Gaussian elimination with full pivoting per row.
// Returned indices are in ascending order.
func independentRows(s *mat.Dense, nMets, n int) []int {
	type pivot struct {
		col int
		row []float64
	}

	var pivots []pivot
	var kept []int
	for i := 0; i < nMets; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = s.At(i, j)
		}
		for _, p := range pivots {
			f := row[p.col]
			if f == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				row[j] -= f * p.row[j]
			}
		}

		best, bestAbs := -1, pivotTol
		for j := 0; j < n; j++ {
			if a := math.Abs(row[j]); a > bestAbs {
				best, bestAbs = j, a
			}
		}
		if best < 0 {
			continue
		}

		f := row[best]
		for j := 0; j < n; j++ {
			row[j] /= f
		}
		pivots = append(pivots, pivot{col: best, row: row})
		kept = append(kept, i)
	}
	return kept
}

func clampBound(v, big float64) float64 {
	if v > big || math.IsInf(v, 1) {
		return big
	}
	if v < -big || math.IsInf(v, -1) {
		return -big
	}
	return v
}
