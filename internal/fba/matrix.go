package fba

import (
	"gonum.org/v1/gonum/mat"

	"pathway-screen/internal/model"
)

// Stoichiometry assembles the stoichiometric matrix S of the model: one row
// per metabolite, one column per reaction, both in model order. S[i][j] is
// the coefficient of metabolite i in reaction j.
func Stoichiometry(m *model.Model) *mat.Dense {
	rows := m.NumMetabolites()
	cols := m.NumReactions()
	if rows == 0 || cols == 0 {
		return nil
	}

	metRow := make(map[string]int, rows)
	for i, met := range m.Metabolites() {
		metRow[met.ID] = i
	}

	s := mat.NewDense(rows, cols, nil)
	for j, rxn := range m.Reactions() {
		for metID, coef := range rxn.Metabolites {
			s.Set(metRow[metID], j, coef)
		}
	}
	return s
}
