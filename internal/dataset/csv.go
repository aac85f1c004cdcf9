package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Header returns the output column order: measurements first, then the
// label, then any other numeric columns in table order.
func (t *Table) Header() []string {
	out := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		if isMeasurement(c.Name) {
			out = append(out, c.Name)
		}
	}
	out = append(out, LabelColumn)
	for _, c := range t.Columns {
		if !isMeasurement(c.Name) {
			out = append(out, c.Name)
		}
	}
	return out
}

// Row formats record i in Header order. Missing values are empty strings.
func (t *Table) Row(i int) []string {
	out := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		if isMeasurement(c.Name) {
			out = append(out, FormatFloat(c.Values[i]))
		}
	}
	out = append(out, t.Label(i))
	for _, c := range t.Columns {
		if !isMeasurement(c.Name) {
			out = append(out, FormatFloat(c.Values[i]))
		}
	}
	return out
}

// WriteCSV writes the table with a header row and one row per record, no
// index column.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FormatFloat renders v in its shortest round-trip form; NaN becomes "".
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isMeasurement(name string) bool {
	for _, m := range Measurements {
		if m == name {
			return true
		}
	}
	return false
}
