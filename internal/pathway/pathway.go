package pathway

import (
	"fmt"

	"pathway-screen/internal/model"
)

// Pathway is a set of heterologous metabolites and reactions to graft onto a
// host model.
type Pathway struct {
	Name        string
	Metabolites []*model.Metabolite
	Reactions   []*model.Reaction
}

// Load reads a pathway from its two flat files. metabolitesCSV may be empty
// when the pathway only rewires metabolites the host already has.
func Load(name, metabolitesCSV, reactionsCSV string) (*Pathway, error) {
	p := &Pathway{Name: name}
	if metabolitesCSV != "" {
		mets, err := ReadMetabolitesCSV(metabolitesCSV)
		if err != nil {
			return nil, err
		}
		p.Metabolites = mets
	}
	if reactionsCSV != "" {
		rxns, err := ReadReactionsCSV(reactionsCSV)
		if err != nil {
			return nil, err
		}
		p.Reactions = rxns
	}
	return p, nil
}

// Apply grafts the pathway onto m: metabolites first, then reactions, so a
// reaction may reference metabolites introduced in the same batch. On any
// error m is left untouched.
func (p *Pathway) Apply(m *model.Model) error {
	staged := m.Copy()
	for _, met := range p.Metabolites {
		c := *met
		if err := staged.AddMetabolite(&c); err != nil {
			return fmt.Errorf("pathway %s: %w", p.Name, err)
		}
	}
	for _, rxn := range p.Reactions {
		if err := staged.AddReaction(rxn.Copy()); err != nil {
			return fmt.Errorf("pathway %s: %w", p.Name, err)
		}
	}
	*m = *staged
	return nil
}
