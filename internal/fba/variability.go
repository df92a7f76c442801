package fba

import (
	"fmt"
	"math"

	"pathway-screen/internal/model"
)

// Range is the feasible flux interval of one reaction.
type Range struct {
	ReactionID string
	Min        float64
	Max        float64
	Status     Status
}

// FluxVariability computes, for each listed reaction, the minimum and maximum
// flux attainable while the growth objective is held at growthFraction of its
// optimum. Two LPs per reaction. The model is not mutated.
func FluxVariability(m *model.Model, reactionIDs []string, growthFraction float64, opts Options) ([]Range, error) {
	obj := m.Objective()
	if len(obj) == 0 {
		return nil, ErrNoObjective
	}
	if len(obj) > 1 {
		return nil, fmt.Errorf("fba: flux variability requires a single objective reaction, model has %d", len(obj))
	}

	growth, err := Optimize(m, opts)
	if err != nil {
		return nil, err
	}
	if growth.Status != StatusOptimal {
		out := make([]Range, len(reactionIDs))
		for i, id := range reactionIDs {
			out[i] = Range{ReactionID: id, Status: growth.Status}
		}
		return out, nil
	}

	constrained, _ := withGrowthFloor(m, obj[0].ID, growth.Objective, growthFraction)

	out := make([]Range, 0, len(reactionIDs))
	for _, id := range reactionIDs {
		j, ok := reactionIndex(constrained, id)
		if !ok {
			return nil, fmt.Errorf("fba: reaction %s not in model", id)
		}

		objective := make([]float64, constrained.NumReactions())

		objective[j] = 1
		maxSol, err := solve(constrained, objective, opts)
		if err != nil {
			return nil, err
		}

		objective[j] = -1
		minSol, err := solve(constrained, objective, opts)
		if err != nil {
			return nil, err
		}

		r := Range{ReactionID: id, Status: maxSol.Status}
		if maxSol.Status == StatusOptimal && minSol.Status == StatusOptimal {
			r.Max = maxSol.Objective
			r.Min = -minSol.Objective
			if math.Abs(r.Min) < fluxEpsilon {
				r.Min = 0
			}
			if math.Abs(r.Max) < fluxEpsilon {
				r.Max = 0
			}
		} else if minSol.Status != StatusOptimal {
			r.Status = minSol.Status
		}
		out = append(out, r)
	}
	return out, nil
}
