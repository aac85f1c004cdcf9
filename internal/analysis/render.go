package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/KaramelBytes/irislab/internal/dataset"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetBorder(false)
	tw.SetColumnSeparator(" ")
	tw.SetCenterSeparator(" ")
	tw.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	return tw
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteHead renders the first n records.
func WriteHead(w io.Writer, t *dataset.Table, n int) {
	if n > t.Len() {
		n = t.Len()
	}
	tw := newTable(w, t.Header())
	for i := 0; i < n; i++ {
		tw.Append(t.Row(i))
	}
	tw.Render()
}

// WriteInfo renders the table shape, non-null counts and column kinds.
func WriteInfo(w io.Writer, t *dataset.Table) {
	fmt.Fprintf(w, "Table %s: %d entries, 0 to %d\n", t.Name, t.Len(), t.Len()-1)
	fmt.Fprintf(w, "Data columns (total %d columns):\n", len(t.Columns)+1)
	tw := newTable(w, []string{"#", "Column", "Non-Null Count", "Dtype"})
	counts := map[string]int{}
	for _, mc := range t.MissingCounts() {
		counts[mc.Name] = mc.Count
	}
	for i, name := range t.Header() {
		kind := "float64"
		if name == dataset.LabelColumn {
			kind = "string"
			if t.Species != nil {
				kind = "category"
			}
		}
		nonNull := t.Len() - counts[name]
		tw.Append([]string{strconv.Itoa(i), name, fmt.Sprintf("%d non-null", nonNull), kind})
	}
	tw.Render()
}

// WriteMissing renders missing-value counts per column.
func WriteMissing(w io.Writer, t *dataset.Table) {
	tw := newTable(w, []string{"Column", "Missing"})
	for _, mc := range t.MissingCounts() {
		tw.Append([]string{mc.Name, strconv.Itoa(mc.Count)})
	}
	tw.Render()
}

// WriteDescribe renders descriptive statistics with one column per field.
func WriteDescribe(w io.Writer, s []ColumnStats) {
	header := []string{""}
	for _, c := range s {
		header = append(header, c.Name)
	}
	tw := newTable(w, header)
	rows := []struct {
		label string
		get   func(ColumnStats) float64
	}{
		{"count", func(c ColumnStats) float64 { return float64(c.Count) }},
		{"mean", func(c ColumnStats) float64 { return c.Mean }},
		{"std", func(c ColumnStats) float64 { return c.Std }},
		{"min", func(c ColumnStats) float64 { return c.Min }},
		{"25%", func(c ColumnStats) float64 { return c.Q25 }},
		{"50%", func(c ColumnStats) float64 { return c.Q50 }},
		{"75%", func(c ColumnStats) float64 { return c.Q75 }},
		{"max", func(c ColumnStats) float64 { return c.Max }},
	}
	for _, r := range rows {
		line := []string{r.label}
		for _, c := range s {
			line = append(line, cell(r.get(c)))
		}
		tw.Append(line)
	}
	tw.Render()
}

// WriteGroup renders a per-species aggregate table.
func WriteGroup(w io.Writer, g *GroupTable) {
	tw := newTable(w, append([]string{dataset.LabelColumn}, g.Columns...))
	for ri, level := range g.Index {
		line := []string{level}
		for _, v := range g.Values[ri] {
			line = append(line, cell(v))
		}
		tw.Append(line)
	}
	tw.Render()
}

// WriteCorr renders the full correlation matrix.
func WriteCorr(w io.Writer, c *CorrMatrix) {
	tw := newTable(w, append([]string{""}, c.Columns...))
	for i, name := range c.Columns {
		line := []string{name}
		for _, v := range c.Values[i] {
			line = append(line, cell(v))
		}
		tw.Append(line)
	}
	tw.Render()
}
