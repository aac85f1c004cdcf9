package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/irislab/internal/dataset"
)

// Aggregate column names produced by GroupMeans.
const (
	MeanSepalLength = "mean_sepal_length"
	MeanPetalLength = "mean_petal_length"
	MeanSepalArea   = "mean_sepal_area"
)

// GroupTable is a per-species aggregate: one row per categorical level.
type GroupTable struct {
	Index   []string
	Columns []string
	Values  [][]float64 // Values[row][col]
}

// Get returns the value at (level, column) and whether it exists.
func (g *GroupTable) Get(level, column string) (float64, bool) {
	ci := -1
	for i, c := range g.Columns {
		if c == column {
			ci = i
		}
	}
	for ri, l := range g.Index {
		if l == level && ci >= 0 {
			return g.Values[ri][ci], true
		}
	}
	return 0, false
}

// Column returns one aggregate column in level order.
func (g *GroupTable) Column(column string) ([]float64, bool) {
	for ci, c := range g.Columns {
		if c == column {
			out := make([]float64, len(g.Index))
			for ri := range g.Index {
				out[ri] = g.Values[ri][ci]
			}
			return out, true
		}
	}
	return nil, false
}

var errNotCleaned = errors.New("table has no categorical labels; run dataset.Clean first")

type aggSpec struct {
	name   string
	source string
	fn     func([]float64) float64
}

func aggregate(t *dataset.Table, specs []aggSpec) (*GroupTable, error) {
	if t.Species == nil {
		return nil, errNotCleaned
	}
	groups := t.Groups()
	g := &GroupTable{Index: append([]string(nil), t.Species.Levels...)}
	for _, s := range specs {
		g.Columns = append(g.Columns, s.name)
	}
	for _, idx := range groups {
		row := make([]float64, len(specs))
		for si, s := range specs {
			col := t.Column(s.source)
			if col == nil {
				return nil, fmt.Errorf("aggregate %s: %w", s.name, &dataset.MissingColumnError{Column: s.source})
			}
			vals := make([]float64, 0, len(idx))
			for _, i := range idx {
				if v := col.Values[i]; !math.IsNaN(v) {
					vals = append(vals, v)
				}
			}
			row[si] = round3(s.fn(vals))
		}
		g.Values = append(g.Values, row)
	}
	return g, nil
}

// GroupMeans computes mean sepal length, mean petal length and mean sepal
// area per species. Without a sepal_area column the third aggregate keeps its
// name but averages sepal_length instead.
func GroupMeans(t *dataset.Table) (*GroupTable, error) {
	areaSource := dataset.SepalArea
	if !t.Has(dataset.SepalArea) {
		areaSource = dataset.SepalLength
	}
	return aggregate(t, []aggSpec{
		{name: MeanSepalLength, source: dataset.SepalLength, fn: mean},
		{name: MeanPetalLength, source: dataset.PetalLength, fn: mean},
		{name: MeanSepalArea, source: areaSource, fn: mean},
	})
}

// AreaStats computes mean, median and std of petal_area per species. The
// boolean is false when the table has no petal_area column.
func AreaStats(t *dataset.Table) (*GroupTable, bool, error) {
	if !t.Has(dataset.PetalArea) {
		return nil, false, nil
	}
	g, err := aggregate(t, []aggSpec{
		{name: "mean", source: dataset.PetalArea, fn: mean},
		{name: "median", source: dataset.PetalArea, fn: median},
		{name: "std", source: dataset.PetalArea, fn: sampleStd},
	})
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// LevelValue pairs a categorical level with a value.
type LevelValue struct {
	Level string
	Value float64
}

// GroupColumnMean returns the unrounded per-species mean of column, sorted
// descending. Ties keep level order.
func GroupColumnMean(t *dataset.Table, column string) ([]LevelValue, error) {
	if t.Species == nil {
		return nil, errNotCleaned
	}
	col := t.Column(column)
	if col == nil {
		return nil, &dataset.MissingColumnError{Column: column}
	}
	out := make([]LevelValue, 0, len(t.Species.Levels))
	for li, idx := range t.Groups() {
		vals := make([]float64, 0, len(idx))
		for _, i := range idx {
			if v := col.Values[i]; !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		out = append(out, LevelValue{Level: t.Species.Levels[li], Value: mean(vals)})
	}
	sort.SliceStable(out, func(i, j int) bool { return descending(out[i].Value, out[j].Value) })
	return out, nil
}

// CumulativeMean returns the expanding-window mean of xs in order.
// Missing entries are skipped in the running mean but keep their position.
func CumulativeMean(xs []float64) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	var n int
	for i, x := range xs {
		if !math.IsNaN(x) {
			sum += x
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Bin is one histogram bucket covering [Lo, Hi); the last bucket is closed.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits the present values of xs into bins equal-width buckets
// between their minimum and maximum.
func Histogram(xs []float64, bins int) ([]Bin, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram: bins must be positive, got %d", bins)
	}
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return nil, errors.New("histogram: no values")
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi
	for _, v := range vals {
		k := int((v - lo) / width)
		if k >= bins {
			k = bins - 1
		}
		if k < 0 {
			k = 0
		}
		// Float division can land one bucket off at an edge.
		if k > 0 && v < out[k].Lo {
			k--
		}
		if k < bins-1 && v >= out[k+1].Lo {
			k++
		}
		out[k].Count++
	}
	return out, nil
}

// descending orders a before b when a is larger; NaN sorts last.
func descending(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
