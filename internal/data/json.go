package data

import (
	"encoding/json"
	"fmt"
	"os"

	"pathway-screen/internal/model"
)

// cobraModel matches the COBRA JSON flat format (the format written by the
// usual constraint-based modeling toolchains and served by BiGG).
type cobraModel struct {
	ID           string            `json:"id"`
	Name         string            `json:"name,omitempty"`
	Version      string            `json:"version,omitempty"`
	Metabolites  []cobraMetabolite `json:"metabolites"`
	Reactions    []cobraReaction   `json:"reactions"`
	Genes        []cobraGene       `json:"genes"`
	Compartments map[string]string `json:"compartments,omitempty"`
}

type cobraMetabolite struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Formula     string `json:"formula,omitempty"`
	Compartment string `json:"compartment,omitempty"`
	Charge      int    `json:"charge,omitempty"`
}

type cobraReaction struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name,omitempty"`
	Metabolites          map[string]float64 `json:"metabolites"`
	LowerBound           float64            `json:"lower_bound"`
	UpperBound           float64            `json:"upper_bound"`
	GeneReactionRule     string             `json:"gene_reaction_rule,omitempty"`
	ObjectiveCoefficient float64            `json:"objective_coefficient,omitempty"`
	Subsystem            string             `json:"subsystem,omitempty"`
}

type cobraGene struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LoadModelJSON reads a COBRA JSON model file.
func LoadModelJSON(path string) (*model.Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseModelJSON(raw)
}

// ParseModelJSON decodes a COBRA JSON document into a Model.
func ParseModelJSON(raw []byte) (*model.Model, error) {
	var cm cobraModel
	if err := json.Unmarshal(raw, &cm); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	return fromCobra(&cm)
}

func fromCobra(cm *cobraModel) (*model.Model, error) {
	m := model.New(cm.ID)
	m.Name = cm.Name
	for code, desc := range cm.Compartments {
		m.Compartments[code] = desc
	}
	for _, met := range cm.Metabolites {
		err := m.AddMetabolite(&model.Metabolite{
			ID:          met.ID,
			Name:        met.Name,
			Formula:     met.Formula,
			Compartment: met.Compartment,
			Charge:      met.Charge,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, rxn := range cm.Reactions {
		mets := make(map[string]float64, len(rxn.Metabolites))
		for id, coef := range rxn.Metabolites {
			mets[id] = coef
		}
		err := m.AddReaction(&model.Reaction{
			ID:                   rxn.ID,
			Name:                 rxn.Name,
			Subsystem:            rxn.Subsystem,
			LowerBound:           rxn.LowerBound,
			UpperBound:           rxn.UpperBound,
			GeneRule:             rxn.GeneReactionRule,
			Metabolites:          mets,
			ObjectiveCoefficient: rxn.ObjectiveCoefficient,
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SaveModelJSON writes the model back out in COBRA JSON form. The gene list
// is rebuilt from the reaction rules.
func SaveModelJSON(path string, m *model.Model) error {
	cm := toCobra(m)
	raw, err := json.MarshalIndent(cm, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

func toCobra(m *model.Model) *cobraModel {
	cm := &cobraModel{
		ID:           m.ID,
		Name:         m.Name,
		Compartments: m.Compartments,
		Metabolites:  make([]cobraMetabolite, 0, m.NumMetabolites()),
		Reactions:    make([]cobraReaction, 0, m.NumReactions()),
		Genes:        []cobraGene{},
	}
	for _, met := range m.Metabolites() {
		cm.Metabolites = append(cm.Metabolites, cobraMetabolite{
			ID:          met.ID,
			Name:        met.Name,
			Formula:     met.Formula,
			Compartment: met.Compartment,
			Charge:      met.Charge,
		})
	}
	for _, rxn := range m.Reactions() {
		cm.Reactions = append(cm.Reactions, cobraReaction{
			ID:                   rxn.ID,
			Name:                 rxn.Name,
			Metabolites:          rxn.Metabolites,
			LowerBound:           rxn.LowerBound,
			UpperBound:           rxn.UpperBound,
			GeneReactionRule:     rxn.GeneRule,
			ObjectiveCoefficient: rxn.ObjectiveCoefficient,
			Subsystem:            rxn.Subsystem,
		})
	}
	for _, g := range m.Genes() {
		cm.Genes = append(cm.Genes, cobraGene{ID: g})
	}
	return cm
}
