// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package methods

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/task"
)

const defaultBins = 10

// scoreInfoGain scores each feature by its information gain on the class
// label: the entropy of the label minus its conditional entropy given the
// feature. Numeric features are discretized into equal-width bins
// (argument "bins", default 10).
//
// Unlike the other built-ins this method honors the n hint and returns
// only its top n features, so downstream alignment backfills the rest with
// the missing sentinel.
func scoreInfoGain(t *task.Task, n int, args filter.Args) (map[string]float64, error) {
	bins, err := intArg(args, "bins", defaultBins)
	if err != nil {
		return nil, err
	}
	if bins < 2 {
		return nil, fmt.Errorf("argument \"bins\": need at least 2 bins, got %d", bins)
	}

	labels := t.ClassTarget()
	base := entropy(labels)

	scores := make(map[string]float64)
	for _, name := range t.FeatureNames() {
		var categories []string
		if col, ok := t.NumColumn(name); ok {
			categories = discretize(col, bins)
		} else if col, ok := t.FactorColumn(name); ok {
			categories = col
		} else {
			continue
		}
		scores[name] = base - conditionalEntropy(labels, categories)
	}

	return topN(scores, n), nil
}

// topN keeps the n highest-scoring features. Ties at the cutoff resolve by
// feature name so the result is deterministic.
func topN(scores map[string]float64, n int) map[string]float64 {
	if n <= 0 || n >= len(scores) {
		return scores
	}
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})
	kept := make(map[string]float64, n)
	for _, name := range names[:n] {
		kept[name] = scores[name]
	}
	return kept
}

// discretize maps numeric values onto equal-width bin labels.
func discretize(values []float64, bins int) []string {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(bins)

	out := make([]string, len(values))
	for i, v := range values {
		b := 0
		if width > 0 {
			b = int((v - lo) / width)
			if b >= bins {
				b = bins - 1
			}
		}
		out[i] = fmt.Sprintf("bin%d", b)
	}
	return out
}

func entropy(labels []string) float64 {
	n := len(labels)
	if n == 0 {
		return 0
	}
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

func conditionalEntropy(labels, categories []string) float64 {
	n := len(labels)
	if n == 0 {
		return 0
	}
	byCategory := make(map[string][]string)
	for i, c := range categories {
		byCategory[c] = append(byCategory[c], labels[i])
	}
	h := 0.0
	for _, group := range byCategory {
		h += float64(len(group)) / float64(n) * entropy(group)
	}
	return h
}
