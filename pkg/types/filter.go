// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"math"

	"go.yaml.in/yaml/v3"
)

// MissingScore is the sentinel for a feature a method did not score.
// Zero is a valid score; absence is always expressed as NaN, never as zero.
func MissingScore() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-score sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// FilterRow is one row of the wide filter table: a feature plus one score
// per requested method, in result method order.
type FilterRow struct {
	// Name is the feature name.
	Name string `json:"name" yaml:"name"`

	// Kind is the feature's value kind.
	Kind FeatureKind `json:"kind" yaml:"kind"`

	// Scores holds one entry per method in FilterResult.Methods.
	// A NaN entry marks a missing score.
	Scores []float64 `json:"scores" yaml:"scores"`
}

// MarshalJSON encodes missing scores as null. encoding/json rejects NaN.
func (r FilterRow) MarshalJSON() ([]byte, error) {
	type row struct {
		Name   string     `json:"name"`
		Kind   FeatureKind `json:"kind"`
		Scores []*float64 `json:"scores"`
	}
	return json.Marshal(row{Name: r.Name, Kind: r.Kind, Scores: nullable(r.Scores)})
}

// MarshalYAML encodes missing scores as null for symmetry with JSON.
func (r FilterRow) MarshalYAML() (any, error) {
	type row struct {
		Name   string      `yaml:"name"`
		Kind   FeatureKind `yaml:"kind"`
		Scores []*float64  `yaml:"scores"`
	}
	return row{Name: r.Name, Kind: r.Kind, Scores: nullable(r.Scores)}, nil
}

// UnmarshalYAML restores null entries to the missing sentinel.
func (r *FilterRow) UnmarshalYAML(value *yaml.Node) error {
	type row struct {
		Name   string      `yaml:"name"`
		Kind   FeatureKind `yaml:"kind"`
		Scores []*float64  `yaml:"scores"`
	}
	var raw row
	if err := value.Decode(&raw); err != nil {
		return err
	}
	r.Name = raw.Name
	r.Kind = raw.Kind
	r.Scores = make([]float64, len(raw.Scores))
	for i, p := range raw.Scores {
		if p == nil {
			r.Scores[i] = MissingScore()
		} else {
			r.Scores[i] = *p
		}
	}
	return nil
}

func nullable(scores []float64) []*float64 {
	out := make([]*float64, len(scores))
	for i := range scores {
		if !IsMissing(scores[i]) {
			v := scores[i]
			out[i] = &v
		}
	}
	return out
}

// FilterResult is the immutable outcome of a filter computation: a task
// description plus the wide score table, one row per task feature in task
// feature order.
type FilterResult struct {
	// Task is a snapshot of the task metadata at computation time.
	Task TaskDescription `json:"task" yaml:"task"`

	// Methods lists the score columns in request order.
	Methods []string `json:"methods" yaml:"methods"`

	// Rows holds one entry per task feature, in task feature order.
	Rows []FilterRow `json:"rows" yaml:"rows"`

	// Legacy marks results produced by the deprecated single-method entry
	// point. Legacy results cannot be turned into reports.
	Legacy bool `json:"legacy,omitempty" yaml:"legacy,omitempty"`
}

// Column returns the score vector for the named method, or false when the
// result has no such column.
func (r *FilterResult) Column(method string) ([]float64, bool) {
	for i, m := range r.Methods {
		if m != method {
			continue
		}
		col := make([]float64, len(r.Rows))
		for j := range r.Rows {
			col[j] = r.Rows[j].Scores[i]
		}
		return col, true
	}
	return nil, false
}

// SortOrder controls per-method row ordering in a report.
type SortOrder string

const (
	SortDescending SortOrder = "descending"
	SortAscending  SortOrder = "ascending"
	SortNone       SortOrder = "none"
)

// Valid reports whether s is a known sort order.
func (s SortOrder) Valid() bool {
	switch s {
	case SortDescending, SortAscending, SortNone:
		return true
	}
	return false
}

// ReportRow is one row of the long-form report table: one feature scored by
// one method. Derived from a FilterRow, never mutated in place.
type ReportRow struct {
	Name   string      `json:"name" yaml:"name"`
	Kind   FeatureKind `json:"kind" yaml:"kind"`
	Method string      `json:"method" yaml:"method"`

	// Score is NaN when the method did not score this feature.
	Score float64 `json:"score" yaml:"score"`
}

// MarshalJSON encodes a missing score as null.
func (r ReportRow) MarshalJSON() ([]byte, error) {
	type row struct {
		Name   string      `json:"name"`
		Kind   FeatureKind `json:"kind"`
		Method string      `json:"method"`
		Score  *float64    `json:"score"`
	}
	out := row{Name: r.Name, Kind: r.Kind, Method: r.Method}
	if !IsMissing(r.Score) {
		v := r.Score
		out.Score = &v
	}
	return json.Marshal(out)
}
