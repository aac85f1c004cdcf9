package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

//go:embed iris.csv
var bundled []byte

// BundledRecords is the fixed record count of the bundled dataset.
const BundledRecords = 150

// ErrMissingColumn is matched by every MissingColumnError.
var ErrMissingColumn = errors.New("missing expected column")

// MissingColumnError names the first expected column absent from the input.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing expected column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// LoadBundled returns the bundled 150-record table.
func LoadBundled(name string) (*Table, error) {
	t, err := LoadCSV(bytes.NewReader(bundled), name)
	if err != nil {
		return nil, fmt.Errorf("load bundled dataset: %w", err)
	}
	if t.Len() != BundledRecords {
		return nil, fmt.Errorf("bundled dataset has %d records, want %d", t.Len(), BundledRecords)
	}
	return t, nil
}

// LoadCSV reads a delimited table with a header row. Headers are normalized
// with NormalizeName; the four measurements and the species label are required.
func LoadCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MissingColumnError{Column: Measurements[0]}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, h := range header {
		n := NormalizeName(h)
		if _, dup := index[n]; !dup {
			index[n] = i
		}
	}
	required := append(append([]string(nil), Measurements...), LabelColumn)
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}

	t := &Table{Name: name}
	for _, m := range Measurements {
		t.Columns = append(t.Columns, &Column{Name: m})
	}
	row := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++
		for ci, m := range Measurements {
			raw := field(rec, index[m])
			v, err := parseValue(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", row, m, err)
			}
			t.Columns[ci].Values = append(t.Columns[ci].Values, v)
		}
		label := field(rec, index[LabelColumn])
		if isMissingToken(label) {
			label = ""
		}
		t.Labels = append(t.Labels, label)
	}
	return t, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isMissingToken(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null", "none":
		return true
	}
	return false
}

func parseValue(s string) (float64, error) {
	if isMissingToken(s) {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

var unitSuffix = []*regexp.Regexp{
	regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`), // e.g., sepal length (cm)
	regexp.MustCompile(`^(.*?)\s*\[([^\]]+)\]\s*$`), // e.g., sepal length [cm]
}

// NormalizeName drops a trailing unit annotation and converts the rest to
// lower snake case: "Sepal Length (cm)" becomes "sepal_length".
func NormalizeName(h string) string {
	s := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	for _, re := range unitSuffix {
		if m := re.FindStringSubmatch(s); len(m) == 3 && strings.TrimSpace(m[1]) != "" {
			s = strings.TrimSpace(m[1])
			break
		}
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), "_")
}

// DeriveFeatures appends sepal_area and petal_area, each the product of the
// matching length and width rounded to three decimals.
func DeriveFeatures(t *Table) {
	pairs := []struct{ out, a, b string }{
		{SepalArea, SepalLength, SepalWidth},
		{PetalArea, PetalLength, PetalWidth},
	}
	for _, p := range pairs {
		a, b := t.Column(p.a), t.Column(p.b)
		if a == nil || b == nil || t.Has(p.out) {
			continue
		}
		vals := make([]float64, len(a.Values))
		for i := range vals {
			vals[i] = Round(a.Values[i]*b.Values[i], 3)
		}
		t.Columns = append(t.Columns, &Column{Name: p.out, Values: vals})
	}
}
