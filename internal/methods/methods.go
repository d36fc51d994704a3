// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package methods provides the built-in feature scoring methods and a
// registry pre-populated with them. Each method is pure Go; none shells
// out to external packages.
package methods

import (
	"fmt"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/pkg/types"
)

// Default is the method applied when a caller requests none explicitly.
const Default = "variance"

// Builtin returns a registry holding every built-in method.
func Builtin() *filter.Registry {
	reg := filter.NewRegistry()
	for _, m := range []filter.Method{
		{
			Name:         "variance",
			TaskKinds:    []types.TaskKind{types.TaskClassification, types.TaskRegression, types.TaskSurvival},
			FeatureKinds: []types.FeatureKind{types.FeatureNumeric},
			Scorer:       filter.ScorerFunc(scoreVariance),
		},
		{
			Name:         "pearson",
			TaskKinds:    []types.TaskKind{types.TaskRegression},
			FeatureKinds: []types.FeatureKind{types.FeatureNumeric},
			Scorer:       filter.ScorerFunc(scorePearson),
		},
		{
			Name:         "anova",
			TaskKinds:    []types.TaskKind{types.TaskClassification},
			FeatureKinds: []types.FeatureKind{types.FeatureNumeric},
			Scorer:       filter.ScorerFunc(scoreANOVA),
		},
		{
			Name:         "chi_squared",
			TaskKinds:    []types.TaskKind{types.TaskClassification},
			FeatureKinds: []types.FeatureKind{types.FeatureFactor, types.FeatureOrdered},
			Scorer:       filter.ScorerFunc(scoreChiSquared),
		},
		{
			Name:         "info_gain",
			TaskKinds:    []types.TaskKind{types.TaskClassification},
			FeatureKinds: []types.FeatureKind{types.FeatureNumeric, types.FeatureFactor, types.FeatureOrdered},
			Scorer:       filter.ScorerFunc(scoreInfoGain),
		},
	} {
		if err := reg.Register(m); err != nil {
			// Built-in names are fixed; a collision is a programming error.
			panic(err)
		}
	}
	return reg
}

// intArg reads an integer argument, accepting the numeric types an
// argument bag commonly carries after YAML or CLI parsing.
func intArg(args filter.Args, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("argument %q: expected an integer, got %T", key, v)
}
