package models

// FBAResponse represents the result of a single optimization
type FBAResponse struct {
	Status    string             `json:"status"` // "optimal", "infeasible", "unbounded"
	Objective float64            `json:"objective"`
	Fluxes    map[string]float64 `json:"fluxes,omitempty"`
}

// ScreenResponse represents the result of a variant screen
type ScreenResponse struct {
	Status  string               `json:"status"`
	Reports []VariantReport      `json:"reports"`
	Ledgers map[string][]FluxRow `json:"ledgers,omitempty"`
}

// VariantReport contains the screen outcome for one variant
type VariantReport struct {
	Variant          string   `json:"variant"`
	Status           string   `json:"status"`
	MetabolitesAdded int      `json:"metabolites_added"`
	ReactionsAdded   int      `json:"reactions_added"`
	Knockouts        []string `json:"knockouts,omitempty"`
	Growth           float64  `json:"growth"`
	GrowthFloor      float64  `json:"growth_floor"`
	ProductFlux      float64  `json:"product_flux"`
	UptakeFlux       float64  `json:"uptake_flux"`
	Yield            float64  `json:"yield"`
}

// FluxRow is one reaction in a variant's flux ledger
type FluxRow struct {
	ReactionID     string  `json:"reaction_id"`
	Name           string  `json:"name,omitempty"`
	Subsystem      string  `json:"subsystem,omitempty"`
	LowerBound     float64 `json:"lower_bound"`
	UpperBound     float64 `json:"upper_bound"`
	GrowthFlux     float64 `json:"growth_flux"`
	ProductionFlux float64 `json:"production_flux"`
}

// RankResponse represents the response from ranking variants
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked variant
type Ranking struct {
	Rank        int     `json:"rank"`
	Variant     string  `json:"variant"`
	Growth      float64 `json:"growth"`
	ProductFlux float64 `json:"product_flux"`
	Yield       float64 `json:"yield"`
}

// ModelInfo represents one entry from the model catalogue
type ModelInfo struct {
	ID              string `json:"id"`
	Organism        string `json:"organism"`
	MetaboliteCount int    `json:"metabolite_count"`
	ReactionCount   int    `json:"reaction_count"`
	GeneCount       int    `json:"gene_count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
