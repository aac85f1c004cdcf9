// Package analysis computes descriptive statistics, per-species aggregates,
// correlations and findings over a cleaned dataset.Table.
package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/irislab/internal/dataset"
	"github.com/montanaflynn/stats"
)

// ColumnStats captures the describe() row set for one numeric column.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarizes every numeric column over its present values.
// All statistics are rounded to three decimals; Std uses n-1.
func Describe(t *dataset.Table) []ColumnStats {
	out := make([]ColumnStats, 0, len(t.Columns))
	for _, c := range t.Columns {
		vals := c.Present()
		s := ColumnStats{Name: c.Name, Count: len(vals)}
		if len(vals) == 0 {
			nan := math.NaN()
			s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
			out = append(out, s)
			continue
		}
		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)
		s.Mean = round3(mean(vals))
		s.Std = round3(sampleStd(vals))
		s.Min = round3(sorted[0])
		s.Q25 = round3(quantile(sorted, 0.25))
		s.Q50 = round3(quantile(sorted, 0.5))
		s.Q75 = round3(quantile(sorted, 0.75))
		s.Max = round3(sorted[len(sorted)-1])
		out = append(out, s)
	}
	return out
}

func mean(vals []float64) float64 {
	m, err := stats.Mean(vals)
	if err != nil {
		return math.NaN()
	}
	return m
}

func median(vals []float64) float64 {
	m, err := stats.Median(vals)
	if err != nil {
		return math.NaN()
	}
	return m
}

func sampleStd(vals []float64) float64 {
	if len(vals) < 2 {
		return math.NaN()
	}
	s, err := stats.StandardDeviationSample(vals)
	if err != nil {
		return math.NaN()
	}
	return s
}

func round3(x float64) float64 { return dataset.Round(x, 3) }

// quantile interpolates linearly between closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
