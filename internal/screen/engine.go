package screen

import (
	"fmt"

	"pathway-screen/internal/analysis"
	"pathway-screen/internal/fba"
	"pathway-screen/internal/model"
	"pathway-screen/internal/pathway"
)

// Variant is one pathway configuration to evaluate.
type Variant struct {
	Name      string
	Pathway   *pathway.Pathway
	Knockouts []string
	// Bounds overrides reaction bounds ([lower, upper]) after the pathway
	// is grafted, keyed by reaction id.
	Bounds map[string][2]float64
}

// Params configures a screen run.
//   - Target: the product reaction to maximize (usually an exchange or sink
//     introduced by the pathway).
//   - Uptake: optional substrate exchange used for the yield column.
//   - GrowthFraction: fraction of optimal growth pinned during the
//     production query.
type Params struct {
	Target         string
	Uptake         string
	GrowthFraction float64
}

type Engine struct {
	Opts fba.Options
}

func New(opts fba.Options) *Engine {
	return &Engine{Opts: opts}
}

// Run evaluates every variant against its own copy of the base model: graft
// the pathway, apply bound overrides and knockouts, run the growth and
// production queries, and
// collect one report row plus a flux ledger per variant. An infeasible or
// unbounded variant is recorded and the screen continues; only structural
// errors (bad pathway, unknown target) abort the run.
//
// The base model is never mutated. The modified model of each variant is
// returned through models so callers can serialize them.
func (e *Engine) Run(base *model.Model, variants []Variant, params Params) (*Result, map[string]*model.Model, error) {
	if base == nil {
		return nil, nil, fmt.Errorf("base model is nil")
	}
	if params.Target == "" {
		return nil, nil, fmt.Errorf("target reaction is required")
	}
	if len(variants) == 0 {
		return nil, nil, fmt.Errorf("no variants")
	}

	result := &Result{
		Reports: make([]Report, 0, len(variants)),
		Ledgers: make(map[string][]FluxRow, len(variants)),
	}
	models := make(map[string]*model.Model, len(variants))

	for _, v := range variants {
		m := base.Copy()

		if v.Pathway != nil {
			if err := v.Pathway.Apply(m); err != nil {
				return nil, nil, fmt.Errorf("variant %s: %w", v.Name, err)
			}
		}
		for id, b := range v.Bounds {
			rxn, ok := m.Reaction(id)
			if !ok {
				return nil, nil, fmt.Errorf("variant %s: bound override for unknown reaction %s", v.Name, id)
			}
			if b[0] > b[1] {
				return nil, nil, fmt.Errorf("variant %s: bounds for %s: lower bound %g exceeds upper bound %g", v.Name, id, b[0], b[1])
			}
			rxn.LowerBound = b[0]
			rxn.UpperBound = b[1]
		}
		if len(v.Knockouts) > 0 {
			if err := m.KnockOutGenes(v.Knockouts...); err != nil {
				return nil, nil, fmt.Errorf("variant %s: %w", v.Name, err)
			}
		}

		queries, err := fba.ProductionQuery(m, params.Target, params.GrowthFraction, e.Opts)
		if err != nil {
			return nil, nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}

		report := Report{
			Variant:   v.Name,
			Status:    queries.Production.Status,
			Knockouts: v.Knockouts,
		}
		if v.Pathway != nil {
			report.MetabolitesAdded = len(v.Pathway.Metabolites)
			report.ReactionsAdded = len(v.Pathway.Reactions)
		}
		if queries.Growth.Status == fba.StatusOptimal {
			report.Growth = queries.Growth.Objective
			report.GrowthFloor = queries.GrowthFloor
		}
		if queries.Production.Status == fba.StatusOptimal {
			report.ProductFlux = queries.Production.Objective
			if params.Uptake != "" {
				report.UptakeFlux = queries.Production.Fluxes[params.Uptake]
				report.Yield = analysis.ComputeYield(report.ProductFlux, report.UptakeFlux)
			}
			result.Ledgers[v.Name] = buildLedger(m, queries)
		}

		result.Reports = append(result.Reports, report)
		models[v.Name] = m
	}

	return result, models, nil
}

func buildLedger(m *model.Model, queries *fba.ProductionResult) []FluxRow {
	rows := make([]FluxRow, 0, m.NumReactions())
	for _, rxn := range m.Reactions() {
		row := FluxRow{
			ReactionID: rxn.ID,
			Name:       rxn.Name,
			Subsystem:  rxn.Subsystem,
			LowerBound: rxn.LowerBound,
			UpperBound: rxn.UpperBound,
		}
		if queries.Growth.Status == fba.StatusOptimal {
			row.GrowthFlux = queries.Growth.Fluxes[rxn.ID]
		}
		row.ProductionFlux = queries.Production.Fluxes[rxn.ID]
		rows = append(rows, row)
	}
	return rows
}
