// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"errors"

	"github.com/pdiddy/filter-engine/internal/task"
	"github.com/pdiddy/filter-engine/pkg/types"
)

// Validate checks that every requested method is registered, supports the
// task's kind, and supports every feature kind present in the task with
// nonzero count. Violations are batched: one error names all unknown
// methods, one names all task-kind offenders, and feature-kind errors for
// several methods are joined, so a caller sees every problem at once
// instead of fixing one and hitting the next.
//
// As a side effect, each method's required packages are loaded through the
// registry's package loader. Load failures are deliberately non-fatal; a
// scorer that truly needs a missing package fails on its own when invoked.
func Validate(reg *Registry, t *task.Task, methodNames []string) error {
	var unknown []string
	methods := make([]Method, 0, len(methodNames))
	for _, name := range methodNames {
		m, ok := reg.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		methods = append(methods, m)
	}
	if len(unknown) > 0 {
		return &UnknownMethodError{Methods: unknown}
	}

	var kindOffenders []string
	for _, m := range methods {
		if !m.SupportsTaskKind(t.Kind()) {
			kindOffenders = append(kindOffenders, m.Name)
		}
	}
	if len(kindOffenders) > 0 {
		return &TaskKindMismatchError{Kind: t.Kind(), Methods: kindOffenders}
	}

	present := presentKinds(t)
	var featureErrs []error
	for _, m := range methods {
		var unsupported []types.FeatureKind
		for _, k := range present {
			if !m.SupportsFeatureKind(k) {
				unsupported = append(unsupported, k)
			}
		}
		if len(unsupported) > 0 {
			featureErrs = append(featureErrs, &FeatureKindMismatchError{Method: m.Name, Kinds: unsupported})
		}
	}
	if len(featureErrs) > 0 {
		return errors.Join(featureErrs...)
	}

	ensurePackages(reg.packages, methods)
	return nil
}

// presentKinds returns the feature kinds with nonzero count, in a fixed
// order so error messages are deterministic.
func presentKinds(t *task.Task) []types.FeatureKind {
	counts := t.CountByKind()
	var present []types.FeatureKind
	for _, k := range []types.FeatureKind{types.FeatureNumeric, types.FeatureFactor, types.FeatureOrdered} {
		if counts[k] > 0 {
			present = append(present, k)
		}
	}
	return present
}
