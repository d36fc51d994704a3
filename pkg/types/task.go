// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the filter-engine
// pipeline: task metadata, filter results, report rows, and configuration.
package types

// TaskKind identifies the supervised learning problem a task describes.
type TaskKind string

const (
	TaskClassification TaskKind = "classification"
	TaskRegression     TaskKind = "regression"
	TaskSurvival       TaskKind = "survival"
)

// Valid reports whether k is one of the known task kinds.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskClassification, TaskRegression, TaskSurvival:
		return true
	}
	return false
}

// FeatureKind identifies the value domain of a single feature column.
type FeatureKind string

const (
	FeatureNumeric FeatureKind = "numeric"
	FeatureFactor  FeatureKind = "factor"
	FeatureOrdered FeatureKind = "ordered"
)

// Valid reports whether k is one of the known feature kinds.
func (k FeatureKind) Valid() bool {
	switch k {
	case FeatureNumeric, FeatureFactor, FeatureOrdered:
		return true
	}
	return false
}

// Feature pairs a feature name with its kind. Feature order within a task
// is authoritative for all downstream alignment.
type Feature struct {
	Name string      `json:"name" yaml:"name"`
	Kind FeatureKind `json:"kind" yaml:"kind"`
}

// TaskDescription is an immutable snapshot of task metadata, captured when
// a filter result is built. Mutating the originating task afterwards does
// not affect descriptions already handed out.
type TaskDescription struct {
	// ID names the task (e.g. the dataset it was built from).
	ID string `json:"id" yaml:"id"`

	// Kind is the supervised learning problem kind.
	Kind TaskKind `json:"kind" yaml:"kind"`

	// FeatureCount is the number of features in the task.
	FeatureCount int `json:"feature_count" yaml:"feature_count"`

	// CountByKind maps each feature kind to the number of features of
	// that kind. Kinds with zero features are omitted.
	CountByKind map[FeatureKind]int `json:"count_by_kind" yaml:"count_by_kind"`
}
