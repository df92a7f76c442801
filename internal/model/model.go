package model

import (
	"errors"
	"fmt"
	"sort"
)

// Model is a genome-scale metabolic network: an ordered collection of
// metabolites and reactions. Order is preserved so the stoichiometric matrix
// and all serialized output are deterministic.
type Model struct {
	ID   string
	Name string

	// Compartments maps compartment code -> description (e.g. "c" -> "cytosol").
	Compartments map[string]string

	metabolites []*Metabolite
	reactions   []*Reaction

	metIndex map[string]int
	rxnIndex map[string]int
}

func New(id string) *Model {
	return &Model{
		ID:           id,
		Compartments: make(map[string]string),
		metIndex:     make(map[string]int),
		rxnIndex:     make(map[string]int),
	}
}

func (m *Model) NumMetabolites() int { return len(m.metabolites) }
func (m *Model) NumReactions() int   { return len(m.reactions) }

// Metabolites returns the metabolites in insertion order. The slice is shared;
// callers must not modify it.
func (m *Model) Metabolites() []*Metabolite { return m.metabolites }

// Reactions returns the reactions in insertion order. The slice is shared;
// callers must not modify it.
func (m *Model) Reactions() []*Reaction { return m.reactions }

func (m *Model) Metabolite(id string) (*Metabolite, bool) {
	i, ok := m.metIndex[id]
	if !ok {
		return nil, false
	}
	return m.metabolites[i], true
}

func (m *Model) Reaction(id string) (*Reaction, bool) {
	i, ok := m.rxnIndex[id]
	if !ok {
		return nil, false
	}
	return m.reactions[i], true
}

// AddMetabolite appends a metabolite. Duplicate IDs are an error, not an
// overwrite.
func (m *Model) AddMetabolite(met *Metabolite) error {
	if met.ID == "" {
		return errors.New("metabolite ID must not be empty")
	}
	if _, exists := m.metIndex[met.ID]; exists {
		return fmt.Errorf("metabolite %s already in model", met.ID)
	}
	m.metIndex[met.ID] = len(m.metabolites)
	m.metabolites = append(m.metabolites, met)
	return nil
}

// AddReaction appends a reaction. Every metabolite the reaction touches must
// already be in the model.
func (m *Model) AddReaction(rxn *Reaction) error {
	if err := rxn.Validate(); err != nil {
		return err
	}
	if _, exists := m.rxnIndex[rxn.ID]; exists {
		return fmt.Errorf("reaction %s already in model", rxn.ID)
	}
	for metID := range rxn.Metabolites {
		if _, ok := m.metIndex[metID]; !ok {
			return fmt.Errorf("reaction %s references unknown metabolite %s", rxn.ID, metID)
		}
	}
	m.rxnIndex[rxn.ID] = len(m.reactions)
	m.reactions = append(m.reactions, rxn)
	return nil
}

// RemoveReaction deletes a reaction by ID.
func (m *Model) RemoveReaction(id string) error {
	i, ok := m.rxnIndex[id]
	if !ok {
		return fmt.Errorf("reaction %s not in model", id)
	}
	m.reactions = append(m.reactions[:i], m.reactions[i+1:]...)
	delete(m.rxnIndex, id)
	for j := i; j < len(m.reactions); j++ {
		m.rxnIndex[m.reactions[j].ID] = j
	}
	return nil
}

// Objective returns the reactions with a non-zero objective coefficient.
func (m *Model) Objective() []*Reaction {
	var out []*Reaction
	for _, r := range m.reactions {
		if r.ObjectiveCoefficient != 0 {
			out = append(out, r)
		}
	}
	return out
}

// SetObjective makes reactionID the sole objective with coefficient 1.
func (m *Model) SetObjective(reactionID string) error {
	target, ok := m.Reaction(reactionID)
	if !ok {
		return fmt.Errorf("objective reaction %s not in model", reactionID)
	}
	for _, r := range m.reactions {
		r.ObjectiveCoefficient = 0
	}
	target.ObjectiveCoefficient = 1
	return nil
}

// Genes returns the sorted union of gene IDs referenced by reaction rules.
// Unparseable rules are skipped; Validate reports them.
func (m *Model) Genes() []string {
	set := make(map[string]struct{})
	for _, r := range m.reactions {
		rule, err := ParseGeneRule(r.GeneRule)
		if err != nil {
			continue
		}
		for _, g := range rule.Genes() {
			set[g] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// KnockOutGenes re-evaluates every gene rule with the named genes absent and
// all other referenced genes present, and closes reactions whose rule comes
// out false. Reactions with an empty rule are untouched.
func (m *Model) KnockOutGenes(genes ...string) error {
	knocked := make(map[string]bool, len(genes))
	for _, g := range genes {
		knocked[g] = true
	}
	for _, r := range m.reactions {
		if r.GeneRule == "" {
			continue
		}
		rule, err := ParseGeneRule(r.GeneRule)
		if err != nil {
			return fmt.Errorf("reaction %s: %w", r.ID, err)
		}
		present := make(map[string]bool)
		touched := false
		for _, g := range rule.Genes() {
			present[g] = !knocked[g]
			if knocked[g] {
				touched = true
			}
		}
		if touched && !rule.Eval(present) {
			r.KnockOut()
		}
	}
	return nil
}

// Copy returns a deep copy. Mutating the copy (bounds, stoichiometry, added
// or removed reactions) never affects the original.
func (m *Model) Copy() *Model {
	cp := New(m.ID)
	cp.Name = m.Name
	for code, desc := range m.Compartments {
		cp.Compartments[code] = desc
	}
	cp.metabolites = make([]*Metabolite, len(m.metabolites))
	for i, met := range m.metabolites {
		c := *met
		cp.metabolites[i] = &c
		cp.metIndex[c.ID] = i
	}
	cp.reactions = make([]*Reaction, len(m.reactions))
	for i, r := range m.reactions {
		cp.reactions[i] = r.Copy()
		cp.rxnIndex[r.ID] = i
	}
	return cp
}

// Validate checks structural consistency: bounds ordering, dangling
// metabolite references, parseable gene rules, and the presence of at least
// one objective reaction.
func (m *Model) Validate() error {
	for _, r := range m.reactions {
		if err := r.Validate(); err != nil {
			return err
		}
		for metID := range r.Metabolites {
			if _, ok := m.metIndex[metID]; !ok {
				return fmt.Errorf("reaction %s references unknown metabolite %s", r.ID, metID)
			}
		}
		if _, err := ParseGeneRule(r.GeneRule); err != nil {
			return fmt.Errorf("reaction %s: %w", r.ID, err)
		}
	}
	if len(m.Objective()) == 0 {
		return errors.New("model has no objective reaction")
	}
	return nil
}
