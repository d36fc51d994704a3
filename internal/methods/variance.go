// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package methods

import (
	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/task"
)

// scoreVariance scores each numeric feature by its sample variance. The
// target is ignored, which is why the method supports every task kind.
func scoreVariance(t *task.Task, _ int, _ filter.Args) (map[string]float64, error) {
	scores := make(map[string]float64)
	for _, name := range t.FeatureNames() {
		col, ok := t.NumColumn(name)
		if !ok {
			continue
		}
		scores[name] = variance(col)
	}
	return scores, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance returns the sample variance (n-1 denominator), or 0 for fewer
// than two observations.
func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(values)-1)
}
