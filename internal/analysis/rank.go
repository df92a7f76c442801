package analysis

import "sort"

// VariantScore is the slice of a screen report that ranking needs.
type VariantScore struct {
	Variant     string
	Growth      float64
	ProductFlux float64
	Yield       float64
}

// RankedVariant is one score with its 1-based rank.
type RankedVariant struct {
	Rank int
	VariantScore
}

// RankByProductFlux sorts scores descending by product flux, ties broken by
// growth and then variant name so the ordering is deterministic.
func RankByProductFlux(scores []VariantScore) []RankedVariant {
	out := make([]RankedVariant, 0, len(scores))
	for _, s := range scores {
		out = append(out, RankedVariant{VariantScore: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductFlux != out[j].ProductFlux {
			return out[i].ProductFlux > out[j].ProductFlux
		}
		if out[i].Growth != out[j].Growth {
			return out[i].Growth > out[j].Growth
		}
		return out[i].Variant < out[j].Variant
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
