package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Reaction is a stoichiometric edge converting substrates to products.
// Conventions:
// - Metabolites maps metabolite ID -> coefficient; negative = consumed,
//   positive = produced.
// - Bounds are fluxes in mmol/gDW/h; LowerBound < 0 means the reaction
//   may run in reverse.
// - GeneRule is a boolean gene-presence expression ("b0001 and b0002"),
//   empty = always available.
type Reaction struct {
	ID                   string
	Name                 string
	Subsystem            string
	LowerBound           float64
	UpperBound           float64
	GeneRule             string
	Metabolites          map[string]float64
	ObjectiveCoefficient float64
}

func (r *Reaction) Validate() error {
	if r.ID == "" {
		return errors.New("reaction ID must not be empty")
	}
	if r.LowerBound > r.UpperBound {
		return fmt.Errorf("reaction %s: lower bound %g exceeds upper bound %g", r.ID, r.LowerBound, r.UpperBound)
	}
	for metID, coef := range r.Metabolites {
		if metID == "" {
			return fmt.Errorf("reaction %s: empty metabolite ID", r.ID)
		}
		if coef == 0 {
			return fmt.Errorf("reaction %s: zero coefficient for %s", r.ID, metID)
		}
	}
	return nil
}

// Reversible reports whether the reaction may carry negative flux.
func (r *Reaction) Reversible() bool {
	return r.LowerBound < 0
}

// KnockOut closes the reaction in both directions.
func (r *Reaction) KnockOut() {
	r.LowerBound = 0
	r.UpperBound = 0
}

// Copy returns a deep copy; the stoichiometry map is not shared.
func (r *Reaction) Copy() *Reaction {
	cp := *r
	cp.Metabolites = make(map[string]float64, len(r.Metabolites))
	for id, coef := range r.Metabolites {
		cp.Metabolites[id] = coef
	}
	return &cp
}

// Equation renders the reaction in human-readable form, e.g.
// "glc__D_e + atp_c -> g6p_c + adp_c" (or "<=>" when reversible).
func (r *Reaction) Equation() string {
	ids := make([]string, 0, len(r.Metabolites))
	for id := range r.Metabolites {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var lhs, rhs []string
	for _, id := range ids {
		coef := r.Metabolites[id]
		term := id
		switch {
		case coef == -1 || coef == 1:
		case coef < 0:
			term = fmt.Sprintf("%g %s", -coef, id)
		default:
			term = fmt.Sprintf("%g %s", coef, id)
		}
		if coef < 0 {
			lhs = append(lhs, term)
		} else {
			rhs = append(rhs, term)
		}
	}
	arrow := "->"
	if r.Reversible() {
		arrow = "<=>"
	}
	return strings.Join(lhs, " + ") + " " + arrow + " " + strings.Join(rhs, " + ")
}
