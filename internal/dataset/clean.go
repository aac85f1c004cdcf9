package dataset

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Imputation records one median fill applied to a column.
type Imputation struct {
	Column string
	Count  int
	Median float64
}

// CleanReport describes what Clean changed.
type CleanReport struct {
	MissingTotal int
	Imputations  []Imputation
}

// Clean fills missing numeric entries with the column median over present
// values and casts the label column to a Categorical. A table with no missing
// entries is left untouched apart from the cast. Missing labels count toward
// MissingTotal but are not imputed.
func Clean(t *Table) (*CleanReport, error) {
	rep := &CleanReport{}
	for _, mc := range t.MissingCounts() {
		rep.MissingTotal += mc.Count
	}
	if rep.MissingTotal > 0 {
		for _, c := range t.Columns {
			n := c.Missing()
			if n == 0 {
				continue
			}
			present := c.Present()
			if len(present) == 0 {
				return nil, fmt.Errorf("column %s: no present values to compute a median", c.Name)
			}
			med, err := stats.Median(present)
			if err != nil {
				return nil, fmt.Errorf("column %s median: %w", c.Name, err)
			}
			for i, v := range c.Values {
				if math.IsNaN(v) {
					c.Values[i] = med
				}
			}
			rep.Imputations = append(rep.Imputations, Imputation{Column: c.Name, Count: n, Median: med})
		}
	}
	t.Species = NewCategorical(t.Labels)
	return rep, nil
}
