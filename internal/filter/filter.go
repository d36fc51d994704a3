// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter orchestrates per-feature importance scoring: it validates
// method/task/feature-kind compatibility, invokes the requested scoring
// methods, aligns their possibly partial outputs to the task's feature
// order, and merges them into one wide result table.
package filter

import (
	"github.com/pdiddy/filter-engine/internal/task"
	"github.com/pdiddy/filter-engine/pkg/types"
)

// Args is an opaque argument bag forwarded to a scoring method.
type Args map[string]any

// Scorer computes per-feature importance scores for a task. The returned
// map may cover only a subset of the task's features; absent features are
// backfilled with the missing sentinel by the aggregator. Scorers must not
// mutate the task. The n hint asks for the top n features; scorers without
// internal truncation may ignore it.
type Scorer interface {
	ScoreFeatures(t *task.Task, n int, args Args) (map[string]float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(t *task.Task, n int, args Args) (map[string]float64, error)

// ScoreFeatures calls f.
func (f ScorerFunc) ScoreFeatures(t *task.Task, n int, args Args) (map[string]float64, error) {
	return f(t, n, args)
}

// Method describes a registered scoring method: its identity, the task and
// feature kinds it supports, external packages it needs, and the scorer
// itself. Immutable after registration.
type Method struct {
	// Name uniquely identifies the method in a registry.
	Name string

	// TaskKinds lists the task kinds the method can score.
	TaskKinds []types.TaskKind

	// FeatureKinds lists the feature kinds the method can score.
	FeatureKinds []types.FeatureKind

	// RequiredPackages names external helper binaries the scorer shells
	// out to. Availability is checked best-effort during validation.
	RequiredPackages []string

	// Scorer performs the actual scoring.
	Scorer Scorer
}

// SupportsTaskKind reports whether the method can score tasks of kind k.
func (m Method) SupportsTaskKind(k types.TaskKind) bool {
	for _, t := range m.TaskKinds {
		if t == k {
			return true
		}
	}
	return false
}

// SupportsFeatureKind reports whether the method can score features of kind k.
func (m Method) SupportsFeatureKind(k types.FeatureKind) bool {
	for _, f := range m.FeatureKinds {
		if f == k {
			return true
		}
	}
	return false
}
