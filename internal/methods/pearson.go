// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package methods

import (
	"math"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/task"
)

// scorePearson scores each numeric feature by the absolute Pearson
// correlation with the numeric target. A constant feature or target
// scores 0.
func scorePearson(t *task.Task, _ int, _ filter.Args) (map[string]float64, error) {
	target := t.NumTarget()
	scores := make(map[string]float64)
	for _, name := range t.FeatureNames() {
		col, ok := t.NumColumn(name)
		if !ok {
			continue
		}
		scores[name] = math.Abs(pearson(col, target))
	}
	return scores, nil
}

func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}
	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}
