package analysis

import (
	"errors"
	"fmt"
	"math"
)

// Findings derives the two summary statements: the species with the largest
// mean sepal length and the strongest positive off-diagonal correlation.
// Ties resolve to the first candidate in level order and in ranked order.
func Findings(g *GroupTable, c *CorrMatrix) ([]string, error) {
	var out []string
	if means, ok := g.Column(MeanSepalLength); ok {
		best := -1
		for i, v := range means {
			if math.IsNaN(v) {
				continue
			}
			if best < 0 || v > means[best] {
				best = i
			}
		}
		if best >= 0 {
			out = append(out, fmt.Sprintf("Species with largest mean sepal length: %s (%.3f cm)", g.Index[best], means[best]))
		}
	}

	top, err := StrongestPair(c)
	if err != nil {
		return out, err
	}
	out = append(out, fmt.Sprintf("Strongest positive correlation: %s vs %s = %.3f", top.A, top.B, top.R))
	return out, nil
}

// StrongestPair returns the first non-self pair of the ranked matrix.
func StrongestPair(c *CorrMatrix) (PairCorr, error) {
	for _, p := range c.Ranked() {
		if p.A != p.B {
			return p, nil
		}
	}
	return PairCorr{}, errors.New("correlation matrix has no off-diagonal pairs")
}
