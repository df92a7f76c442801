package screen

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pathway-screen/internal/fba"
)

// WriteSummaryCSV writes one row per variant.
func WriteSummaryCSV(path string, reports []Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"variant",
		"status",
		"metabolites_added",
		"reactions_added",
		"knockouts",
		"growth",
		"growth_floor",
		"product_flux",
		"uptake_flux",
		"yield",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		row := []string{
			r.Variant,
			string(r.Status),
			strconv.Itoa(r.MetabolitesAdded),
			strconv.Itoa(r.ReactionsAdded),
			strings.Join(r.Knockouts, ";"),
			fmtFloat(r.Growth),
			fmtFloat(r.GrowthFloor),
			fmtFloat(r.ProductFlux),
			fmtFloat(r.UptakeFlux),
			fmtFloat(r.Yield),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteFluxCSV writes a variant's per-reaction flux ledger.
func WriteFluxCSV(path string, rows []FluxRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"reaction_id",
		"name",
		"subsystem",
		"lower_bound",
		"upper_bound",
		"growth_flux",
		"production_flux",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.ReactionID,
			r.Name,
			r.Subsystem,
			fmtFloat(r.LowerBound),
			fmtFloat(r.UpperBound),
			fmtFloat(r.GrowthFlux),
			fmtFloat(r.ProductionFlux),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// ReadSummaryCSV reads back a summary written by WriteSummaryCSV, e.g. to
// re-rank a finished screen without re-solving it.
func ReadSummaryCSV(path string) ([]Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty summary", path)
	}
	if rows[0][0] != "variant" {
		return nil, fmt.Errorf("%s: missing summary header", path)
	}

	reports := make([]Report, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 10 {
			return nil, fmt.Errorf("%s: line %d: expected 10 fields, got %d", path, i+2, len(row))
		}
		r := Report{
			Variant: row[0],
			Status:  fba.Status(row[1]),
		}
		if r.MetabolitesAdded, err = strconv.Atoi(row[2]); err != nil {
			return nil, fmt.Errorf("%s: line %d: bad metabolites_added %q", path, i+2, row[2])
		}
		if r.ReactionsAdded, err = strconv.Atoi(row[3]); err != nil {
			return nil, fmt.Errorf("%s: line %d: bad reactions_added %q", path, i+2, row[3])
		}
		if row[4] != "" {
			r.Knockouts = strings.Split(row[4], ";")
		}
		floats := []struct {
			name string
			dst  *float64
			raw  string
		}{
			{"growth", &r.Growth, row[5]},
			{"growth_floor", &r.GrowthFloor, row[6]},
			{"product_flux", &r.ProductFlux, row[7]},
			{"uptake_flux", &r.UptakeFlux, row[8]},
			{"yield", &r.Yield, row[9]},
		}
		for _, fld := range floats {
			if *fld.dst, err = strconv.ParseFloat(fld.raw, 64); err != nil {
				return nil, fmt.Errorf("%s: line %d: bad %s %q", path, i+2, fld.name, fld.raw)
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
