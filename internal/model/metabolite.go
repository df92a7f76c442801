package model

// Metabolite is one chemical species node in the network.
// Conventions:
// - ID carries the compartment suffix used by the flat files (e.g. "glc__D_e").
// - Compartment is the bare compartment code (e.g. "c", "e").
// - Charge is the formal charge; 0 is valid and common.
type Metabolite struct {
	ID          string
	Name        string
	Formula     string
	Compartment string
	Charge      int
}
