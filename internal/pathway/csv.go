package pathway

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pathway-screen/internal/model"
)

// Flat-file formats.
//
// metabolites.csv (fixed width, header row required):
//
//	id,name,formula,compartment,charge
//
// reactions.csv (variable width, header row required):
//
//	id,name,lower_bound,upper_bound,gene_rule,met_1,coef_1[,met_2,coef_2,...]
//
// Blank lines and lines whose first field starts with '#' are skipped.

const reactionFixedFields = 5

// ReadMetabolitesCSV parses a metabolite flat file.
func ReadMetabolitesCSV(path string) ([]*model.Metabolite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mets, err := parseMetabolites(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mets, nil
}

// ParseMetabolitesCSV parses metabolite rows from r. Used when the flat file
// arrives inline (e.g. in an API request body) rather than on disk.
func ParseMetabolitesCSV(r io.Reader) ([]*model.Metabolite, error) {
	return parseMetabolites(r)
}

func parseMetabolites(r io.Reader) ([]*model.Metabolite, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []*model.Metabolite
	seen := make(map[string]bool)
	line := 0
	sawData := false
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line++
		if skipRow(record) {
			continue
		}
		if !sawData && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}
		sawData = true
		if len(record) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 fields, got %d", line, len(record))
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("line %d: empty metabolite id", line)
		}
		if seen[id] {
			return nil, fmt.Errorf("line %d: duplicate metabolite %s", line, id)
		}
		seen[id] = true

		charge := 0
		if s := strings.TrimSpace(record[4]); s != "" {
			charge, err = strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad charge %q", line, record[4])
			}
		}
		out = append(out, &model.Metabolite{
			ID:          id,
			Name:        strings.TrimSpace(record[1]),
			Formula:     strings.TrimSpace(record[2]),
			Compartment: strings.TrimSpace(record[3]),
			Charge:      charge,
		})
	}
	return out, nil
}

// ReadReactionsCSV parses a reaction flat file. Stoichiometry is carried in
// repeating metabolite-id/coefficient pairs after the fixed fields; an
// unpaired trailing field is an error.
func ReadReactionsCSV(path string) ([]*model.Reaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rxns, err := parseReactions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rxns, nil
}

// ParseReactionsCSV parses reaction rows from r.
func ParseReactionsCSV(r io.Reader) ([]*model.Reaction, error) {
	return parseReactions(r)
}

func parseReactions(r io.Reader) ([]*model.Reaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []*model.Reaction
	seen := make(map[string]bool)
	line := 0
	sawData := false
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line++
		if skipRow(record) {
			continue
		}
		if !sawData && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}
		sawData = true
		rxn, err := parseReactionRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[rxn.ID] {
			return nil, fmt.Errorf("line %d: duplicate reaction %s", line, rxn.ID)
		}
		seen[rxn.ID] = true
		out = append(out, rxn)
	}
	return out, nil
}

func parseReactionRow(record []string) (*model.Reaction, error) {
	if len(record) < reactionFixedFields+2 {
		return nil, fmt.Errorf("expected at least %d fields, got %d", reactionFixedFields+2, len(record))
	}

	id := strings.TrimSpace(record[0])
	if id == "" {
		return nil, fmt.Errorf("empty reaction id")
	}
	lb, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("reaction %s: bad lower bound %q", id, record[2])
	}
	ub, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("reaction %s: bad upper bound %q", id, record[3])
	}
	if lb > ub {
		return nil, fmt.Errorf("reaction %s: lower bound %g exceeds upper bound %g", id, lb, ub)
	}
	geneRule := strings.TrimSpace(record[4])
	if _, err := model.ParseGeneRule(geneRule); err != nil {
		return nil, err
	}

	rest := record[reactionFixedFields:]
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("reaction %s: unpaired metabolite/coefficient field %q", id, rest[len(rest)-1])
	}
	mets := make(map[string]float64, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		metID := strings.TrimSpace(rest[i])
		if metID == "" {
			return nil, fmt.Errorf("reaction %s: empty metabolite id in pair %d", id, i/2+1)
		}
		coef, err := strconv.ParseFloat(strings.TrimSpace(rest[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("reaction %s: bad coefficient %q for %s", id, rest[i+1], metID)
		}
		if coef == 0 {
			return nil, fmt.Errorf("reaction %s: zero coefficient for %s", id, metID)
		}
		if _, dup := mets[metID]; dup {
			return nil, fmt.Errorf("reaction %s: metabolite %s listed twice", id, metID)
		}
		mets[metID] = coef
	}

	return &model.Reaction{
		ID:          id,
		Name:        strings.TrimSpace(record[1]),
		LowerBound:  lb,
		UpperBound:  ub,
		GeneRule:    geneRule,
		Metabolites: mets,
	}, nil
}

func skipRow(record []string) bool {
	if len(record) == 0 {
		return true
	}
	first := strings.TrimSpace(record[0])
	if strings.HasPrefix(first, "#") {
		return true
	}
	if len(record) == 1 && first == "" {
		return true
	}
	return false
}
