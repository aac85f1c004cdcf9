// Package dataset holds the in-memory sample table and the load, derive and
// clean stages that build it.
package dataset

import (
	"math"
	"sort"
)

// Canonical column names after header normalization.
const (
	SepalLength = "sepal_length"
	SepalWidth  = "sepal_width"
	PetalLength = "petal_length"
	PetalWidth  = "petal_width"
	SepalArea   = "sepal_area"
	PetalArea   = "petal_area"
	LabelColumn = "species"
)

// Measurements lists the required numeric columns in table order.
var Measurements = []string{SepalLength, SepalWidth, PetalLength, PetalWidth}

// Column is a numeric column. NaN marks a missing entry.
type Column struct {
	Name   string
	Values []float64
}

// Missing returns the number of missing entries.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Present returns the non-missing values in table order.
func (c *Column) Present() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Categorical is the label column after the cast: sorted distinct levels and a
// per-record code (-1 for a missing label).
type Categorical struct {
	Levels []string
	Codes  []int
}

// NewCategorical builds a categorical from raw labels. Empty labels are missing.
func NewCategorical(labels []string) *Categorical {
	seen := map[string]struct{}{}
	for _, l := range labels {
		if l != "" {
			seen[l] = struct{}{}
		}
	}
	levels := make([]string, 0, len(seen))
	for l := range seen {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i
	}
	codes := make([]int, len(labels))
	for i, l := range labels {
		if c, ok := index[l]; ok {
			codes[i] = c
		} else {
			codes[i] = -1
		}
	}
	return &Categorical{Levels: levels, Codes: codes}
}

// Value returns the label of record i, or "" if missing.
func (c *Categorical) Value(i int) string {
	if c.Codes[i] < 0 {
		return ""
	}
	return c.Levels[c.Codes[i]]
}

// Table is the ordered collection of records for one run.
type Table struct {
	Name    string
	Columns []*Column
	Labels  []string
	// Species is set by Clean.
	Species *Categorical
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Labels) }

// Column returns the named numeric column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Has reports whether the named numeric column exists.
func (t *Table) Has(name string) bool { return t.Column(name) != nil }

// MissingCounts returns per-column missing counts in Header order.
func (t *Table) MissingCounts() []ColumnCount {
	header := t.Header()
	out := make([]ColumnCount, 0, len(header))
	for _, name := range header {
		n := 0
		if name == LabelColumn {
			for _, l := range t.Labels {
				if l == "" {
					n++
				}
			}
		} else {
			n = t.Column(name).Missing()
		}
		out = append(out, ColumnCount{Name: name, Count: n})
	}
	return out
}

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Name  string
	Count int
}

// Groups returns record indexes per categorical level, in level order.
// Records with a missing label are skipped. Clean must have run.
func (t *Table) Groups() [][]int {
	if t.Species == nil {
		return nil
	}
	out := make([][]int, len(t.Species.Levels))
	for i, c := range t.Species.Codes {
		if c >= 0 {
			out[c] = append(out[c], i)
		}
	}
	return out
}

// Label returns the label of record i, preferring the categorical cast.
func (t *Table) Label(i int) string {
	if t.Species != nil {
		return t.Species.Value(i)
	}
	return t.Labels[i]
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	cp := &Table{Name: t.Name, Labels: append([]string(nil), t.Labels...)}
	for _, c := range t.Columns {
		cp.Columns = append(cp.Columns, &Column{Name: c.Name, Values: append([]float64(nil), c.Values...)})
	}
	if t.Species != nil {
		cp.Species = &Categorical{
			Levels: append([]string(nil), t.Species.Levels...),
			Codes:  append([]int(nil), t.Species.Codes...),
		}
	}
	return cp
}
