package models

import "encoding/json"

// ModelSource selects where the base model comes from. Exactly one of
// BiGGID and JSON must be set.
type ModelSource struct {
	BiGGID string          `json:"bigg_id,omitempty"` // e.g. "e_coli_core"
	JSON   json.RawMessage `json:"json,omitempty"`    // inline COBRA JSON document
}

// SolverOptions overrides the simplex defaults
type SolverOptions struct {
	Tolerance float64 `json:"tolerance,omitempty"`
	BigBound  float64 `json:"big_bound,omitempty"`
}

// FBARequest represents the request body for a single optimization
type FBARequest struct {
	Model    ModelSource   `json:"model" binding:"required"`
	Reaction string        `json:"reaction,omitempty"` // empty: maximize the model objective
	Solver   SolverOptions `json:"solver,omitempty"`
	Options  FBAOptions    `json:"options,omitempty"`
}

// FBAOptions contains optional FBA parameters
type FBAOptions struct {
	IncludeFluxes bool `json:"include_fluxes,omitempty"` // default: false
}

// ScreenRequest represents the request body for screening pathway variants
type ScreenRequest struct {
	Model          ModelSource   `json:"model" binding:"required"`
	Target         string        `json:"target" binding:"required"`
	Uptake         string        `json:"uptake,omitempty"`
	GrowthFraction float64       `json:"growth_fraction,omitempty"` // default: 0.5
	Variants       []VariantSpec `json:"variants" binding:"required"`
	Solver         SolverOptions `json:"solver,omitempty"`
	Options        ScreenOptions `json:"options,omitempty"`
}

// VariantSpec defines one variant to screen. The pathway flat files are
// passed inline as CSV text in the same format the CLI reads from disk.
type VariantSpec struct {
	Name           string   `json:"name" binding:"required"`
	MetabolitesCSV string   `json:"metabolites_csv,omitempty"`
	ReactionsCSV   string   `json:"reactions_csv,omitempty"`
	Knockouts      []string `json:"knockouts,omitempty"`
	// Bounds overrides reaction bounds ([lower, upper]) after the pathway
	// is grafted.
	Bounds map[string][2]float64 `json:"bounds,omitempty"`
}

// ScreenOptions contains optional screen parameters
type ScreenOptions struct {
	IncludeLedgers bool `json:"include_ledgers,omitempty"` // default: false
}

// RankRequest represents a request to rank variant scores
type RankRequest struct {
	Scores []ScoreEntry `json:"scores" binding:"required"`
}

// ScoreEntry is one variant's screen outcome
type ScoreEntry struct {
	Variant     string  `json:"variant" binding:"required"`
	Growth      float64 `json:"growth"`
	ProductFlux float64 `json:"product_flux"`
	Yield       float64 `json:"yield,omitempty"`
}
