package dataset

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Round rounds half away from zero to the given places; NaN passes through.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := stats.Round(x, places)
	if err != nil {
		return x
	}
	return r
}
