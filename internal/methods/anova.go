// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package methods

import (
	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/task"
)

// scoreANOVA scores each numeric feature by its one-way ANOVA F-statistic
// across the classes of a classification task. Higher F means the feature
// separates the classes better.
func scoreANOVA(t *task.Task, _ int, _ filter.Args) (map[string]float64, error) {
	labels := t.ClassTarget()
	scores := make(map[string]float64)
	for _, name := range t.FeatureNames() {
		col, ok := t.NumColumn(name)
		if !ok {
			continue
		}
		scores[name] = fStatistic(col, labels)
	}
	return scores, nil
}

// fStatistic computes the one-way ANOVA F-statistic of values grouped by
// label. Degenerate inputs (a single group, or no residual degrees of
// freedom) score 0. A zero within-group variance with nonzero between-group
// variance is floored to keep the score finite.
func fStatistic(values []float64, labels []string) float64 {
	groups := make(map[string][]float64)
	for i, v := range values {
		groups[labels[i]] = append(groups[labels[i]], v)
	}

	k := len(groups)
	n := len(values)
	if k < 2 || n <= k {
		return 0
	}

	grand := mean(values)
	var ssBetween, ssWithin float64
	for _, g := range groups {
		gm := mean(g)
		d := gm - grand
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			dv := v - gm
			ssWithin += dv * dv
		}
	}

	msBetween := ssBetween / float64(k-1)
	msWithin := ssWithin / float64(n-k)
	if msWithin == 0 {
		if msBetween == 0 {
			return 0
		}
		msWithin = 1e-12
	}
	return msBetween / msWithin
}
