// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package task provides the supervised task abstraction consumed by filter
// methods: an ordered feature set with per-feature kinds, a target-stripped
// data view, and the target itself.
package task

import (
	"fmt"

	"github.com/pdiddy/filter-engine/pkg/types"
)

// Task is a supervised learning task: named, kinded feature columns plus a
// target. Feature order is insertion order and is authoritative for all
// downstream alignment.
type Task struct {
	id   string
	kind types.TaskKind

	features   []types.Feature
	kindByName map[string]types.FeatureKind
	numCols    map[string][]float64
	factorCols map[string][]string

	numTarget   []float64
	classTarget []string

	rows int // -1 until the first column fixes it
}

// New creates an empty task of the given kind.
func New(id string, kind types.TaskKind) (*Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task id must not be empty")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown task kind %q", kind)
	}
	return &Task{
		id:         id,
		kind:       kind,
		kindByName: make(map[string]types.FeatureKind),
		numCols:    make(map[string][]float64),
		factorCols: make(map[string][]string),
		rows:       -1,
	}, nil
}

func (t *Task) addFeature(name string, kind types.FeatureKind, n int) error {
	if name == "" {
		return fmt.Errorf("feature name must not be empty")
	}
	if _, exists := t.kindByName[name]; exists {
		return fmt.Errorf("duplicate feature %q", name)
	}
	if err := t.checkRows(n); err != nil {
		return fmt.Errorf("feature %q: %w", name, err)
	}
	t.features = append(t.features, types.Feature{Name: name, Kind: kind})
	t.kindByName[name] = kind
	return nil
}

func (t *Task) checkRows(n int) error {
	if t.rows == -1 {
		t.rows = n
		return nil
	}
	if n != t.rows {
		return fmt.Errorf("column has %d rows, task has %d", n, t.rows)
	}
	return nil
}

// AddNumericFeature appends a numeric feature column.
func (t *Task) AddNumericFeature(name string, values []float64) error {
	if err := t.addFeature(name, types.FeatureNumeric, len(values)); err != nil {
		return err
	}
	t.numCols[name] = append([]float64(nil), values...)
	return nil
}

// AddFactorFeature appends a categorical feature column. When ordered is
// true the feature kind is "ordered" rather than "factor".
func (t *Task) AddFactorFeature(name string, values []string, ordered bool) error {
	kind := types.FeatureFactor
	if ordered {
		kind = types.FeatureOrdered
	}
	if err := t.addFeature(name, kind, len(values)); err != nil {
		return err
	}
	t.factorCols[name] = append([]string(nil), values...)
	return nil
}

// SetClassTarget sets the class label column for a classification task.
func (t *Task) SetClassTarget(labels []string) error {
	if t.kind != types.TaskClassification {
		return fmt.Errorf("class target requires a classification task, got %s", t.kind)
	}
	if err := t.checkRows(len(labels)); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	t.classTarget = append([]string(nil), labels...)
	return nil
}

// SetNumericTarget sets the numeric target column for a regression or
// survival task (the survival time in the latter case).
func (t *Task) SetNumericTarget(values []float64) error {
	if t.kind == types.TaskClassification {
		return fmt.Errorf("numeric target requires a regression or survival task")
	}
	if err := t.checkRows(len(values)); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	t.numTarget = append([]float64(nil), values...)
	return nil
}

// ID returns the task identifier.
func (t *Task) ID() string { return t.id }

// Kind returns the task kind.
func (t *Task) Kind() types.TaskKind { return t.kind }

// Len returns the number of observations.
func (t *Task) Len() int {
	if t.rows < 0 {
		return 0
	}
	return t.rows
}

// FeatureCount returns the number of features.
func (t *Task) FeatureCount() int { return len(t.features) }

// FeatureNames returns the feature names in authoritative task order.
func (t *Task) FeatureNames() []string {
	names := make([]string, len(t.features))
	for i, f := range t.features {
		names[i] = f.Name
	}
	return names
}

// Features returns a copy of the ordered feature list.
func (t *Task) Features() []types.Feature {
	return append([]types.Feature(nil), t.features...)
}

// FeatureKind looks up the kind of the named feature.
func (t *Task) FeatureKind(name string) (types.FeatureKind, bool) {
	k, ok := t.kindByName[name]
	return k, ok
}

// CountByKind returns the number of features per kind, omitting kinds with
// zero features.
func (t *Task) CountByKind() map[types.FeatureKind]int {
	counts := make(map[types.FeatureKind]int)
	for _, f := range t.features {
		counts[f.Kind]++
	}
	return counts
}

// NumColumn returns the values of a numeric feature.
func (t *Task) NumColumn(name string) ([]float64, bool) {
	col, ok := t.numCols[name]
	return col, ok
}

// FactorColumn returns the values of a factor or ordered feature.
func (t *Task) FactorColumn(name string) ([]string, bool) {
	col, ok := t.factorCols[name]
	return col, ok
}

// ClassTarget returns the class labels of a classification task, or nil.
func (t *Task) ClassTarget() []string { return t.classTarget }

// NumTarget returns the numeric target of a regression or survival task,
// or nil.
func (t *Task) NumTarget() []float64 { return t.numTarget }

// Validate checks the task is complete enough to score: at least one
// feature and a target matching the task kind.
func (t *Task) Validate() error {
	if len(t.features) == 0 {
		return fmt.Errorf("task %s has no features", t.id)
	}
	switch t.kind {
	case types.TaskClassification:
		if t.classTarget == nil {
			return fmt.Errorf("classification task %s has no class target", t.id)
		}
	default:
		if t.numTarget == nil {
			return fmt.Errorf("%s task %s has no numeric target", t.kind, t.id)
		}
	}
	return nil
}

// Description captures an immutable metadata snapshot of the task.
func (t *Task) Description() types.TaskDescription {
	return types.TaskDescription{
		ID:           t.id,
		Kind:         t.kind,
		FeatureCount: len(t.features),
		CountByKind:  t.CountByKind(),
	}
}
