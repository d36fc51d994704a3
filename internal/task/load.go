// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package task

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filter-engine/pkg/types"
)

// Descriptor is the on-disk representation of a task: the dataset file,
// the target column, and optional explicit feature kinds.
type Descriptor struct {
	// ID names the task. Defaults to the descriptor file name without
	// extension.
	ID string `yaml:"id"`

	// Kind is the task kind: classification, regression, or survival.
	Kind types.TaskKind `yaml:"kind"`

	// Dataset is the CSV file path, relative to the descriptor file.
	Dataset string `yaml:"dataset"`

	// Target names the target column in the dataset.
	Target string `yaml:"target"`

	// Features optionally fixes the kind of named columns. Columns not
	// listed have their kind inferred from the data: all-numeric values
	// give numeric, anything else gives factor.
	Features map[string]types.FeatureKind `yaml:"features,omitempty"`
}

// Load reads a task descriptor and its CSV dataset, returning a ready task.
func Load(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task descriptor: %w", err)
	}
	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing task descriptor: %w", err)
	}

	if desc.ID == "" {
		base := filepath.Base(path)
		desc.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	if desc.Dataset == "" {
		return nil, fmt.Errorf("task descriptor %s: dataset is required", path)
	}
	if desc.Target == "" {
		return nil, fmt.Errorf("task descriptor %s: target is required", path)
	}

	dataset := desc.Dataset
	if !filepath.IsAbs(dataset) {
		dataset = filepath.Join(filepath.Dir(path), dataset)
	}
	return FromCSV(desc, dataset)
}

// FromCSV builds a task from a descriptor and a CSV file with a header row.
func FromCSV(desc Descriptor, csvPath string) (*Task, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", csvPath, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s needs a header row and at least one observation", csvPath)
	}

	header := records[0]
	targetIdx := -1
	for i, name := range header {
		if name == desc.Target {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return nil, fmt.Errorf("target column %q not found in dataset %s", desc.Target, csvPath)
	}

	for name := range desc.Features {
		if !containsColumn(header, name) {
			return nil, fmt.Errorf("declared feature %q not found in dataset %s", name, csvPath)
		}
	}

	t, err := New(desc.ID, desc.Kind)
	if err != nil {
		return nil, err
	}

	for col, name := range header {
		raw := make([]string, 0, len(records)-1)
		for _, rec := range records[1:] {
			if col >= len(rec) {
				return nil, fmt.Errorf("dataset %s: short record for column %q", csvPath, name)
			}
			raw = append(raw, rec[col])
		}

		if col == targetIdx {
			if err := setTarget(t, desc.Kind, name, raw); err != nil {
				return nil, err
			}
			continue
		}

		kind, declared := desc.Features[name]
		if !declared {
			kind = inferKind(raw)
		}
		if err := addColumn(t, name, kind, raw); err != nil {
			return nil, err
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func containsColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

// inferKind returns numeric when every value parses as a float, factor
// otherwise.
func inferKind(values []string) types.FeatureKind {
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return types.FeatureFactor
		}
	}
	return types.FeatureNumeric
}

func addColumn(t *Task, name string, kind types.FeatureKind, raw []string) error {
	switch kind {
	case types.FeatureNumeric:
		values, err := parseFloats(name, raw)
		if err != nil {
			return err
		}
		return t.AddNumericFeature(name, values)
	case types.FeatureFactor:
		return t.AddFactorFeature(name, raw, false)
	case types.FeatureOrdered:
		return t.AddFactorFeature(name, raw, true)
	}
	return fmt.Errorf("feature %q: unknown kind %q", name, kind)
}

func setTarget(t *Task, kind types.TaskKind, name string, raw []string) error {
	if kind == types.TaskClassification {
		return t.SetClassTarget(raw)
	}
	values, err := parseFloats(name, raw)
	if err != nil {
		return err
	}
	return t.SetNumericTarget(values)
}

func parseFloats(name string, raw []string) ([]float64, error) {
	values := make([]float64, len(raw))
	for i, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: value %q is not numeric", name, v)
		}
		values[i] = f
	}
	return values, nil
}
