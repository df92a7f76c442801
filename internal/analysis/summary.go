package analysis

import (
	"math"
	"sort"
)

// activeEpsilon is the flux magnitude below which a reaction counts as idle.
const activeEpsilon = 1e-9

// ComputeYield is product flux per unit of substrate uptake. Uptake follows
// the exchange convention (negative = into the cell); its magnitude is used.
// A zero uptake yields zero rather than an infinity.
func ComputeYield(productFlux, uptakeFlux float64) float64 {
	uptake := math.Abs(uptakeFlux)
	if uptake < activeEpsilon {
		return 0
	}
	return productFlux / uptake
}

// FluxSummary describes the shape of one flux distribution.
type FluxSummary struct {
	Reactions int
	Active    int

	MaxAbs  float64
	MeanAbs float64
	P05Abs  float64
	P95Abs  float64
}

// Summarize computes distribution statistics over the absolute fluxes.
func Summarize(fluxes map[string]float64) FluxSummary {
	s := FluxSummary{Reactions: len(fluxes)}
	if len(fluxes) == 0 {
		return s
	}

	vals := make([]float64, 0, len(fluxes))
	sum := 0.0
	for _, v := range fluxes {
		a := math.Abs(v)
		vals = append(vals, a)
		sum += a
		if a > s.MaxAbs {
			s.MaxAbs = a
		}
		if a > activeEpsilon {
			s.Active++
		}
	}
	sort.Float64s(vals)
	s.MeanAbs = sum / float64(len(vals))
	s.P05Abs = percentileSorted(vals, 0.05)
	s.P95Abs = percentileSorted(vals, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
