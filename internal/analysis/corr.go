package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/irislab/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// Correlate computes Pearson correlations between every pair of numeric
// columns over rows where both are present, rounded to three decimals. A
// zero-variance column yields NaN entries, including its diagonal.
func Correlate(t *dataset.Table) *CorrMatrix {
	n := len(t.Columns)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i, c := range t.Columns {
		m.Columns[i] = c.Name
		m.Values[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := pearson(t.Columns[a].Values, t.Columns[b].Values)
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			r = round3(r)
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

// At returns the coefficient for the named pair.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Unstack flattens the matrix row-major into (row, column, value) pairs.
func (m *CorrMatrix) Unstack() []PairCorr {
	out := make([]PairCorr, 0, len(m.Columns)*len(m.Columns))
	for i, a := range m.Columns {
		for j, b := range m.Columns {
			out = append(out, PairCorr{A: a, B: b, R: m.Values[i][j]})
		}
	}
	return out
}

// Ranked returns the unstacked pairs stably sorted by descending coefficient,
// NaN last.
func (m *CorrMatrix) Ranked() []PairCorr {
	pairs := m.Unstack()
	sort.SliceStable(pairs, func(i, j int) bool { return descending(pairs[i].R, pairs[j].R) })
	return pairs
}

func pearson(xs, ys []float64) float64 {
	var px, py []float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) < 2 {
		return math.NaN()
	}
	if constant(px) || constant(py) {
		// 0/0: the coefficient is undefined.
		return math.NaN()
	}
	mx, my := mean(px), mean(py)
	var sxy, sxx, syy float64
	for i := range px {
		dx, dy := px[i]-mx, py[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	r := sxy / math.Sqrt(sxx*syy)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
