// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package methods

import (
	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/task"
)

// scoreChiSquared scores each factor or ordered feature by the chi-squared
// statistic of its contingency table against the class label.
func scoreChiSquared(t *task.Task, _ int, _ filter.Args) (map[string]float64, error) {
	labels := t.ClassTarget()
	scores := make(map[string]float64)
	for _, name := range t.FeatureNames() {
		col, ok := t.FactorColumn(name)
		if !ok {
			continue
		}
		scores[name] = chiSquared(col, labels)
	}
	return scores, nil
}

// chiSquared computes the chi-squared independence statistic between two
// categorical columns of equal length.
func chiSquared(values, labels []string) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	observed := make(map[string]map[string]int)
	rowTotals := make(map[string]int)
	colTotals := make(map[string]int)
	for i, v := range values {
		l := labels[i]
		if observed[v] == nil {
			observed[v] = make(map[string]int)
		}
		observed[v][l]++
		rowTotals[v]++
		colTotals[l]++
	}

	// Every (value, label) cell contributes, including empty ones: an
	// expected count with zero observations is evidence of dependence.
	var stat float64
	for v := range rowTotals {
		for l := range colTotals {
			expected := float64(rowTotals[v]) * float64(colTotals[l]) / float64(n)
			if expected == 0 {
				continue
			}
			d := float64(observed[v][l]) - expected
			stat += d * d / expected
		}
	}
	return stat
}
