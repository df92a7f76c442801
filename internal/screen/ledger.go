package screen

import "pathway-screen/internal/fba"

// Report is the per-variant summary row, the primary "what happened"
// artifact of a screen.
type Report struct {
	Variant string
	Status  fba.Status

	MetabolitesAdded int
	ReactionsAdded   int
	Knockouts        []string

	// Growth at the unconstrained optimum.
	Growth float64
	// GrowthFloor is the pinned growth during the production query.
	GrowthFloor float64
	// ProductFlux is the maximum target flux at the pinned growth.
	ProductFlux float64
	// UptakeFlux is the substrate uptake in the production solution
	// (negative by exchange convention).
	UptakeFlux float64
	// Yield is product flux per unit substrate taken up.
	Yield float64
}

// FluxRow is one reaction of a variant's flux ledger: the solved fluxes of
// both queries next to the bounds they ran under.
type FluxRow struct {
	ReactionID string
	Name       string
	Subsystem  string

	LowerBound float64
	UpperBound float64

	GrowthFlux     float64
	ProductionFlux float64
}

// Result bundles everything a screen run produced.
type Result struct {
	Reports []Report
	// Ledgers maps variant name -> per-reaction flux rows.
	Ledgers map[string][]FluxRow
}
