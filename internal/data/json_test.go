package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pathway-screen/internal/data"
)

const sampleModelJSON = `{
  "id": "toy_core",
  "name": "Toy core network",
  "compartments": {"c": "cytosol", "e": "extracellular space"},
  "metabolites": [
    {"id": "glc_e", "name": "D-Glucose", "formula": "C6H12O6", "compartment": "e"},
    {"id": "glc_c", "name": "D-Glucose", "formula": "C6H12O6", "compartment": "c", "charge": 0}
  ],
  "reactions": [
    {
      "id": "EX_glc_e",
      "name": "Glucose exchange",
      "metabolites": {"glc_e": -1.0},
      "lower_bound": -10.0,
      "upper_bound": 1000.0
    },
    {
      "id": "GLCt",
      "name": "Glucose transport",
      "metabolites": {"glc_e": -1.0, "glc_c": 1.0},
      "lower_bound": 0.0,
      "upper_bound": 1000.0,
      "gene_reaction_rule": "b1101 or b2415",
      "objective_coefficient": 1.0,
      "subsystem": "Transport"
    }
  ],
  "genes": [{"id": "b1101"}, {"id": "b2415"}]
}`

func TestLoadModelJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toy.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleModelJSON), 0o644))

	m, err := data.LoadModelJSON(path)
	require.NoError(t, err)

	require.Equal(t, "toy_core", m.ID)
	require.Equal(t, 2, m.NumMetabolites())
	require.Equal(t, 2, m.NumReactions())
	require.Equal(t, "cytosol", m.Compartments["c"])

	ex, ok := m.Reaction("EX_glc_e")
	require.True(t, ok)
	require.Equal(t, -10.0, ex.LowerBound)
	require.True(t, ex.Reversible())

	tr, ok := m.Reaction("GLCt")
	require.True(t, ok)
	require.Equal(t, "b1101 or b2415", tr.GeneRule)
	require.Equal(t, 1.0, tr.Metabolites["glc_c"])
	require.Equal(t, "Transport", tr.Subsystem)

	obj := m.Objective()
	require.Len(t, obj, 1)
	require.Equal(t, "GLCt", obj[0].ID)
}

func TestLoadModelJSONDuplicateReaction(t *testing.T) {
	bad := `{
  "id": "dup",
  "metabolites": [{"id": "a_c"}],
  "reactions": [
    {"id": "R1", "metabolites": {"a_c": 1.0}, "lower_bound": 0, "upper_bound": 1},
    {"id": "R1", "metabolites": {"a_c": -1.0}, "lower_bound": 0, "upper_bound": 1}
  ],
  "genes": []
}`
	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := data.LoadModelJSON(path)
	require.ErrorContains(t, err, "already in model")
}

func TestSaveModelJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "toy.json")
	require.NoError(t, os.WriteFile(src, []byte(sampleModelJSON), 0o644))

	m, err := data.LoadModelJSON(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "out.json")
	require.NoError(t, data.SaveModelJSON(dst, m))

	back, err := data.LoadModelJSON(dst)
	require.NoError(t, err)
	require.Equal(t, m.ID, back.ID)
	require.Equal(t, m.NumReactions(), back.NumReactions())
	require.Equal(t, []string{"b1101", "b2415"}, back.Genes())

	tr, ok := back.Reaction("GLCt")
	require.True(t, ok)
	require.Equal(t, 1.0, tr.ObjectiveCoefficient)
}
