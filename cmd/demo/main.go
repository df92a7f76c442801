package main

import (
	"flag"
	"fmt"

	"pathway-screen/internal/data"
	"pathway-screen/internal/fba"
	"pathway-screen/internal/model"
	"pathway-screen/internal/pathway"
	"pathway-screen/internal/screen"
)

// Demo:
// - Build a small host model in code (no files needed)
// - Graft two pathway variants onto it
// - Run the growth and production queries to show how the pieces fit together
func main() {
	modelPath := flag.String("model", "", "Optional path to a COBRA JSON model (default: built-in toy host)")
	target := flag.String("target", "EX_prod", "Product reaction to maximize")
	uptake := flag.String("uptake", "EX_glc", "Substrate exchange for the yield column")
	fraction := flag.Float64("fraction", 0.5, "Fraction of optimal growth to pin")
	outCSV := flag.String("out", "", "Optional path to write the summary CSV (e.g. results/summary.csv)")
	flag.Parse()

	var base *model.Model
	var err error
	if *modelPath != "" {
		base, err = data.LoadModelJSON(*modelPath)
		if err != nil {
			panic(err)
		}
	} else {
		base = toyHost()
	}

	variants := []screen.Variant{
		{Name: "direct", Pathway: toyPathway(1.0)},
		{Name: "lossy", Pathway: toyPathway(0.6)},
		{Name: "lossy-ko", Pathway: toyPathway(0.6), Knockouts: []string{"synA"}},
	}

	engine := screen.New(fba.DefaultOptions())
	result, _, err := engine.Run(base, variants, screen.Params{
		Target:         *target,
		Uptake:         *uptake,
		GrowthFraction: *fraction,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Screened %d variants against %s (%d metabolites, %d reactions)\n\n",
		len(result.Reports), base.ID, base.NumMetabolites(), base.NumReactions())

	fmt.Printf("%-12s %-10s %8s %8s %8s %8s\n", "variant", "status", "growth", "floor", "product", "yield")
	for _, r := range result.Reports {
		fmt.Printf("%-12s %-10s %8.4f %8.4f %8.4f %8.4f\n",
			r.Variant, r.Status, r.Growth, r.GrowthFloor, r.ProductFlux, r.Yield)
	}

	if *outCSV != "" {
		if err := screen.WriteSummaryCSV(*outCSV, result.Reports); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}

// toyHost is a minimal growth network: glucose in, biomass out.
func toyHost() *model.Model {
	m := model.New("toy_host")
	must(m.AddMetabolite(&model.Metabolite{ID: "glc_c", Name: "Glucose", Compartment: "c"}))
	must(m.AddReaction(&model.Reaction{
		ID:          "EX_glc",
		Name:        "Glucose exchange",
		LowerBound:  -10,
		UpperBound:  0,
		Metabolites: map[string]float64{"glc_c": -1},
	}))
	must(m.AddReaction(&model.Reaction{
		ID:                   "GROWTH",
		Name:                 "Biomass",
		UpperBound:           1000,
		Metabolites:          map[string]float64{"glc_c": -1},
		ObjectiveCoefficient: 1,
	}))
	return m
}

// toyPathway converts glucose into an exported product with the given
// stoichiometric efficiency.
func toyPathway(efficiency float64) *pathway.Pathway {
	return &pathway.Pathway{
		Name: "toy_product",
		Metabolites: []*model.Metabolite{
			{ID: "prod_c", Name: "Product", Compartment: "c"},
		},
		Reactions: []*model.Reaction{
			{
				ID:          "PSYN",
				Name:        "Product synthase",
				UpperBound:  1000,
				GeneRule:    "synA",
				Metabolites: map[string]float64{"glc_c": -1, "prod_c": efficiency},
			},
			{
				ID:          "EX_prod",
				Name:        "Product exchange",
				UpperBound:  1000,
				Metabolites: map[string]float64{"prod_c": -1},
			},
		},
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
