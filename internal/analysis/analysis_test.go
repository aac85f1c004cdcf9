package analysis

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/irislab/internal/dataset"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func cleanIris(t *testing.T, derive bool) *dataset.Table {
	t.Helper()
	tbl, err := dataset.LoadBundled("iris")
	if err != nil {
		t.Fatalf("LoadBundled: %v", err)
	}
	if derive {
		dataset.DeriveFeatures(tbl)
	}
	if _, err := dataset.Clean(tbl); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	return tbl
}

func TestDescribeIris(t *testing.T) {
	s := Describe(cleanIris(t, true))
	if len(s) != 6 {
		t.Fatalf("describe columns = %d, want 6", len(s))
	}
	sl := s[0]
	want := ColumnStats{Name: "sepal_length", Count: 150, Mean: 5.843, Std: 0.828, Min: 4.3, Q25: 5.1, Q50: 5.8, Q75: 6.4, Max: 7.9}
	if diff := cmp.Diff(want, sl); diff != "" {
		t.Fatalf("sepal_length stats mismatch (-want +got):\n%s", diff)
	}
	if s[5].Name != "petal_area" || s[5].Mean != 5.794 {
		t.Fatalf("petal_area stats = %+v", s[5])
	}
}

func TestQuantileLinear(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	cases := map[float64]float64{0: 1, 0.25: 1.75, 0.5: 2.5, 0.75: 3.25, 1: 4}
	for q, want := range cases {
		if got := quantile(sorted, q); math.Abs(got-want) > 1e-12 {
			t.Errorf("quantile(%v) = %v, want %v", q, got, want)
		}
	}
}

func TestGroupMeans(t *testing.T) {
	g, err := GroupMeans(cleanIris(t, true))
	if err != nil {
		t.Fatalf("GroupMeans: %v", err)
	}
	if diff := cmp.Diff([]string{MeanSepalLength, MeanPetalLength, MeanSepalArea}, g.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	want := [][]float64{
		{5.006, 1.462, 17.258},
		{5.936, 4.26, 16.526},
		{6.588, 5.552, 19.685},
	}
	if diff := cmp.Diff(want, g.Values); diff != "" {
		t.Fatalf("group means mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupMeansFallsBackWithoutSepalArea(t *testing.T) {
	g, err := GroupMeans(cleanIris(t, false))
	if err != nil {
		t.Fatalf("GroupMeans: %v", err)
	}
	area, ok := g.Column(MeanSepalArea)
	if !ok {
		t.Fatalf("fallback must keep the %s column", MeanSepalArea)
	}
	length, _ := g.Column(MeanSepalLength)
	if diff := cmp.Diff(length, area); diff != "" {
		t.Fatalf("fallback should average sepal_length (-want +got):\n%s", diff)
	}
	if _, ok, _ := AreaStats(cleanIris(t, false)); ok {
		t.Fatalf("AreaStats should be skipped without petal_area")
	}
}

func TestAreaStats(t *testing.T) {
	g, ok, err := AreaStats(cleanIris(t, true))
	if err != nil || !ok {
		t.Fatalf("AreaStats: ok=%v err=%v", ok, err)
	}
	v, _ := g.Get("virginica", "median")
	if v != 11.445 {
		t.Fatalf("virginica median petal_area = %v, want 11.445", v)
	}
	v, _ = g.Get("setosa", "std")
	if v != 0.181 {
		t.Fatalf("setosa std petal_area = %v, want 0.181", v)
	}
}

func TestGroupRequiresClean(t *testing.T) {
	tbl, err := dataset.LoadBundled("iris")
	if err != nil {
		t.Fatalf("LoadBundled: %v", err)
	}
	if _, err := GroupMeans(tbl); err == nil {
		t.Fatalf("expected error before Clean")
	}
}

func TestCorrelateSymmetricWithUnitDiagonal(t *testing.T) {
	c := Correlate(cleanIris(t, true))
	for i := range c.Columns {
		if c.Values[i][i] != 1 {
			t.Fatalf("diagonal %s = %v", c.Columns[i], c.Values[i][i])
		}
		for j := range c.Columns {
			if c.Values[i][j] != c.Values[j][i] {
				t.Fatalf("asymmetric at %s/%s", c.Columns[i], c.Columns[j])
			}
			if c.Values[i][j] < -1 || c.Values[i][j] > 1 {
				t.Fatalf("out of range at %s/%s: %v", c.Columns[i], c.Columns[j], c.Values[i][j])
			}
		}
	}
	if r, _ := c.At("petal_length", "petal_width"); r != 0.963 {
		t.Fatalf("petal_length/petal_width = %v, want 0.963", r)
	}
}

func TestCorrelateZeroVarianceIsNaN(t *testing.T) {
	in := "sepal_length,sepal_width,petal_length,petal_width,species\n" +
		"5,3,1,0.2,a\n6,3,2,0.2,b\n7,3,3,0.2,c\n"
	tbl, err := dataset.LoadCSV(strings.NewReader(in), "flat")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	c := Correlate(tbl)
	if r, _ := c.At("sepal_width", "sepal_width"); !math.IsNaN(r) {
		t.Fatalf("constant column diagonal = %v, want NaN", r)
	}
	if r, _ := c.At("sepal_length", "sepal_width"); !math.IsNaN(r) {
		t.Fatalf("constant column pair = %v, want NaN", r)
	}
	if r, _ := c.At("sepal_length", "petal_length"); r != 1 {
		t.Fatalf("perfectly correlated pair = %v, want 1", r)
	}
	ranked := c.Ranked()
	if !math.IsNaN(ranked[len(ranked)-1].R) {
		t.Fatalf("NaN should rank last")
	}
}

func TestFindingsIris(t *testing.T) {
	tbl := cleanIris(t, true)
	g, err := GroupMeans(tbl)
	if err != nil {
		t.Fatalf("GroupMeans: %v", err)
	}
	f, err := Findings(g, Correlate(tbl))
	if err != nil {
		t.Fatalf("Findings: %v", err)
	}
	want := []string{
		"Species with largest mean sepal length: virginica (6.588 cm)",
		"Strongest positive correlation: petal_width vs petal_area = 0.980",
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestStrongestPairNeverSelf(t *testing.T) {
	c := &CorrMatrix{
		Columns: []string{"a", "b", "c"},
		Values: [][]float64{
			{1, 0.5, 0.9},
			{0.5, 1, 0.9},
			{0.9, 0.9, 1},
		},
	}
	p, err := StrongestPair(c)
	if err != nil {
		t.Fatalf("StrongestPair: %v", err)
	}
	if diff := cmp.Diff(PairCorr{A: "a", B: "c", R: 0.9}, p); diff != "" {
		t.Fatalf("tie-break mismatch (-want +got):\n%s", diff)
	}
	if _, err := StrongestPair(&CorrMatrix{Columns: []string{"a"}, Values: [][]float64{{1}}}); err == nil {
		t.Fatalf("expected error for single column")
	}
}

func TestGroupColumnMeanSortedDescending(t *testing.T) {
	tbl := cleanIris(t, true)
	got, err := GroupColumnMean(tbl, dataset.PetalLength)
	if err != nil {
		t.Fatalf("GroupColumnMean: %v", err)
	}
	want := []LevelValue{{"virginica", 5.552}, {"versicolor", 4.26}, {"setosa", 1.462}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("bar values mismatch (-want +got):\n%s", diff)
	}
	again, _ := GroupColumnMean(tbl, dataset.PetalLength)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("not deterministic (-first +second):\n%s", diff)
	}
}

func TestHistogramEdgeValues(t *testing.T) {
	bins, err := Histogram([]float64{0, 1, 2, 3, 4}, 4)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	var got []int
	for _, b := range bins {
		got = append(got, b.Count)
	}
	if diff := cmp.Diff([]int{1, 1, 1, 2}, got); diff != "" {
		t.Fatalf("edge counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCumulativeMean(t *testing.T) {
	got := CumulativeMean([]float64{2, 4, 6, math.NaN(), 8})
	want := []float64{2, 3, 4, 4, 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cumulative mean mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogram(t *testing.T) {
	tbl := cleanIris(t, true)
	bins, err := Histogram(tbl.Column(dataset.SepalLength).Values, 12)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if len(bins) != 12 {
		t.Fatalf("bins = %d, want 12", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 150 {
		t.Fatalf("total count = %d, want 150", total)
	}
	if bins[0].Lo != 4.3 || bins[11].Hi != 7.9 {
		t.Fatalf("range = [%v, %v]", bins[0].Lo, bins[11].Hi)
	}
	vals := tbl.Column(dataset.SepalLength).Values
	for i, b := range bins {
		in := 0
		for _, v := range vals {
			if v >= b.Lo && (v < b.Hi || (i == len(bins)-1 && v == b.Hi)) {
				in++
			}
		}
		if in != b.Count {
			t.Errorf("bin %d [%v, %v): count = %d, values in range = %d", i, b.Lo, b.Hi, b.Count, in)
		}
	}
	if _, err := Histogram([]float64{1}, 0); err == nil {
		t.Fatalf("expected error for zero bins")
	}
}

func TestRenderTables(t *testing.T) {
	tbl := cleanIris(t, true)
	var buf bytes.Buffer
	WriteHead(&buf, tbl, 5)
	WriteInfo(&buf, tbl)
	WriteMissing(&buf, tbl)
	WriteDescribe(&buf, Describe(tbl))
	g, _ := GroupMeans(tbl)
	WriteGroup(&buf, g)
	WriteCorr(&buf, Correlate(tbl))
	out := buf.String()
	for _, want := range []string{"sepal_length", "17.85", "150 non-null", "category", "5.843", "mean_sepal_area", "0.963"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, out)
		}
	}
}
