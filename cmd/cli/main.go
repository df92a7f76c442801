package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pathway-screen/internal/analysis"
	"pathway-screen/internal/config"
	"pathway-screen/internal/data"
	"pathway-screen/internal/fba"
	"pathway-screen/internal/model"
	"pathway-screen/internal/pathway"
	"pathway-screen/internal/screen"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "screen":
		cmdScreen(os.Args[2:])
	case "fba":
		cmdFBA(os.Args[2:])
	case "fva":
		cmdFVA(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli screen --config examples/config.yaml --out results")
	fmt.Println("  cli fba --model e_coli_core.json [--reaction EX_etoh_e]")
	fmt.Println("  cli fva --model e_coli_core.json --reactions EX_etoh_e,EX_ac_e")
	fmt.Println("  cli rank --summary results/summary.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - screen grafts each pathway variant onto the base model, runs the")
	fmt.Println("    growth and production queries, and writes a summary plus one flux")
	fmt.Println("    ledger per variant")
	fmt.Println("  - fba maximizes the model objective (or a single reaction)")
}

func cmdScreen(args []string) {
	fs := flag.NewFlagSet("screen", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "results", "Output directory")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	base, err := loadBaseModel(cfg.Model)
	if err != nil {
		panic(err)
	}

	variants := make([]screen.Variant, 0, len(cfg.Variants))
	for _, vc := range cfg.Variants {
		p, err := pathway.Load(vc.Name, vc.MetabolitesCSV, vc.ReactionsCSV)
		if err != nil {
			panic(err)
		}
		variants = append(variants, screen.Variant{
			Name:      vc.Name,
			Pathway:   p,
			Knockouts: vc.Knockouts,
			Bounds:    vc.Bounds,
		})
	}

	engine := screen.New(solverOptions(cfg.Solver))
	result, modified, err := engine.Run(base, variants, screen.Params{
		Target:         cfg.Screen.Target,
		Uptake:         cfg.Screen.Uptake,
		GrowthFraction: cfg.Screen.GrowthFraction,
	})
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	summaryPath := filepath.Join(*outDir, "summary.csv")
	if err := screen.WriteSummaryCSV(summaryPath, result.Reports); err != nil {
		panic(err)
	}
	for name, rows := range result.Ledgers {
		if err := screen.WriteFluxCSV(filepath.Join(*outDir, name+"_fluxes.csv"), rows); err != nil {
			panic(err)
		}
	}
	for name, m := range modified {
		if err := data.SaveModelJSON(filepath.Join(*outDir, name+"_model.json"), m); err != nil {
			panic(err)
		}
	}

	fmt.Printf("Wrote %d variants to %s\n", len(result.Reports), summaryPath)

	scores := make([]analysis.VariantScore, 0, len(result.Reports))
	for _, r := range result.Reports {
		if r.Status != fba.StatusOptimal {
			continue
		}
		scores = append(scores, analysis.VariantScore{
			Variant:     r.Variant,
			Growth:      r.Growth,
			ProductFlux: r.ProductFlux,
			Yield:       r.Yield,
		})
	}
	ranked := analysis.RankByProductFlux(scores)
	fmt.Printf("%-4s %-24s %-10s %-10s %-8s\n", "rank", "variant", "growth", "product", "yield")
	for _, r := range ranked {
		fmt.Printf("%-4d %-24s %-10.4f %-10.4f %-8.4f\n", r.Rank, r.Variant, r.Growth, r.ProductFlux, r.Yield)
	}
}

func cmdFBA(args []string) {
	fs := flag.NewFlagSet("fba", flag.ExitOnError)
	modelPath := fs.String("model", "", "Path to COBRA JSON model")
	biggID := fs.String("bigg", "", "BiGG model id to download instead of --model")
	reaction := fs.String("reaction", "", "Optional: maximize this reaction instead of the model objective")
	fluxes := fs.Bool("fluxes", false, "Print nonzero fluxes")
	_ = fs.Parse(args)

	m, err := loadBaseModel(config.ModelConfig{Path: *modelPath, BiGGID: *biggID})
	if err != nil {
		panic(err)
	}

	opts := fba.DefaultOptions()
	var sol *fba.Solution
	if *reaction != "" {
		sol, err = fba.OptimizeReaction(m, *reaction, opts)
	} else {
		sol, err = fba.Optimize(m, opts)
	}
	if err != nil {
		panic(err)
	}

	fmt.Printf("status=%s objective=%.6f\n", sol.Status, sol.Objective)
	if *fluxes && sol.Status == fba.StatusOptimal {
		for _, rxn := range m.Reactions() {
			if v := sol.Fluxes[rxn.ID]; v != 0 {
				fmt.Printf("%-20s %12.6f\n", rxn.ID, v)
			}
		}
	}
}

func cmdFVA(args []string) {
	fs := flag.NewFlagSet("fva", flag.ExitOnError)
	modelPath := fs.String("model", "", "Path to COBRA JSON model")
	biggID := fs.String("bigg", "", "BiGG model id to download instead of --model")
	reactions := fs.String("reactions", "", "Comma-separated reaction ids (empty=all)")
	fraction := fs.Float64("fraction", 0.5, "Fraction of optimal growth to pin")
	_ = fs.Parse(args)

	m, err := loadBaseModel(config.ModelConfig{Path: *modelPath, BiGGID: *biggID})
	if err != nil {
		panic(err)
	}

	var ids []string
	if *reactions != "" {
		ids = splitIDs(*reactions)
	} else {
		for _, rxn := range m.Reactions() {
			ids = append(ids, rxn.ID)
		}
	}

	ranges, err := fba.FluxVariability(m, ids, *fraction, fba.DefaultOptions())
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-20s %12s %12s %s\n", "reaction", "min", "max", "status")
	for _, r := range ranges {
		fmt.Printf("%-20s %12.6f %12.6f %s\n", r.ReactionID, r.Min, r.Max, r.Status)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	summaryPath := fs.String("summary", "results/summary.csv", "Path to a screen summary CSV")
	_ = fs.Parse(args)

	reports, err := screen.ReadSummaryCSV(*summaryPath)
	if err != nil {
		panic(err)
	}

	scores := make([]analysis.VariantScore, 0, len(reports))
	for _, r := range reports {
		if r.Status != fba.StatusOptimal {
			continue
		}
		scores = append(scores, analysis.VariantScore{
			Variant:     r.Variant,
			Growth:      r.Growth,
			ProductFlux: r.ProductFlux,
			Yield:       r.Yield,
		})
	}

	ranked := analysis.RankByProductFlux(scores)
	fmt.Printf("%-4s %-24s %-10s %-10s %-8s\n", "rank", "variant", "growth", "product", "yield")
	for _, r := range ranked {
		fmt.Printf("%-4d %-24s %-10.4f %-10.4f %-8.4f\n", r.Rank, r.Variant, r.Growth, r.ProductFlux, r.Yield)
	}
}

func loadBaseModel(mc config.ModelConfig) (*model.Model, error) {
	switch {
	case mc.Path != "" && mc.BiGGID != "":
		return nil, fmt.Errorf("--model and --bigg are mutually exclusive")
	case mc.Path != "":
		return data.LoadModelJSON(mc.Path)
	case mc.BiGGID != "":
		return data.NewBiGGClient("").DownloadModel(mc.BiGGID)
	default:
		return nil, fmt.Errorf("a model path or BiGG id is required")
	}
}

func solverOptions(sc config.SolverConfig) fba.Options {
	opts := fba.DefaultOptions()
	if sc.Tolerance > 0 {
		opts.Tolerance = sc.Tolerance
	}
	if sc.BigBound > 0 {
		opts.BigBound = sc.BigBound
	}
	return opts
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
