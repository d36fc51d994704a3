// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report reshapes a wide filter result into the long-form table a
// rendering backend consumes, and provides text and HTML renderers.
package report

import (
	"fmt"
	"sort"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/pkg/types"
)

const defaultNShow = 20

// Options controls report generation.
type Options struct {
	// Sort orders rows within each facet. Default descending.
	Sort types.SortOrder

	// NShow caps rows per facet (default 20). It is clamped to the
	// largest number of non-missing scores any method produced.
	NShow int

	// ColorByType passes a per-row feature-kind grouping attribute to
	// the renderer. Presentation only: sorting and truncation ignore it.
	ColorByType bool
}

// Facet is one method's slice of the long-form table. Row order is the
// rendering order: a backend that draws categories in given order
// reproduces the intended ranking.
type Facet struct {
	Method string            `json:"method" yaml:"method"`
	Rows   []types.ReportRow `json:"rows" yaml:"rows"`
}

// Report is the renderable long-form reshape of a filter result. Multiple
// methods render as one facet per method with independent scales; a single
// method renders as one chart whose title also names the method.
type Report struct {
	Title        string  `json:"title" yaml:"title"`
	TaskID       string  `json:"task_id" yaml:"task_id"`
	FeatureCount int     `json:"feature_count" yaml:"feature_count"`
	ColorByType  bool    `json:"color_by_type" yaml:"color_by_type"`
	Facets       []Facet `json:"facets" yaml:"facets"`
}

// ToReport reshapes a wide filter result into long form, applying
// per-method sorting and truncation. Under an ascending or descending sort
// each method's rows are ordered by that method's score with missing
// scores last, and the first NShow rows are kept. Under SortNone the
// task's original feature order is preserved untruncated. Each transform
// produces a fresh table; the input result is never modified.
func ToReport(res *types.FilterResult, opts Options) (*Report, error) {
	if res.Legacy {
		return nil, fmt.Errorf("legacy single-method result cannot be rendered: recompute with the standard entry point")
	}

	sortOrder := opts.Sort
	if sortOrder == "" {
		sortOrder = types.SortDescending
	}
	if !sortOrder.Valid() {
		return nil, &filter.InvalidParameterError{Param: "sort", Value: opts.Sort, Reason: "must be descending, ascending, or none"}
	}

	nShow := opts.NShow
	if nShow == 0 {
		nShow = defaultNShow
	}
	if nShow < 0 {
		return nil, &filter.InvalidParameterError{Param: "n_show", Value: opts.NShow, Reason: "must be positive"}
	}
	if max := maxNonMissing(res); nShow > max {
		nShow = max
	}

	facets := make([]Facet, len(res.Methods))
	for i, method := range res.Methods {
		rows := longRows(res, i, method)
		if sortOrder != types.SortNone {
			rows = sortRows(rows, sortOrder)
			if len(rows) > nShow {
				rows = rows[:nShow]
			}
		}
		facets[i] = Facet{Method: method, Rows: rows}
	}

	return &Report{
		Title:        title(res),
		TaskID:       res.Task.ID,
		FeatureCount: res.Task.FeatureCount,
		ColorByType:  opts.ColorByType,
		Facets:       facets,
	}, nil
}

func title(res *types.FilterResult) string {
	t := fmt.Sprintf("%s (%d features)", res.Task.ID, res.Task.FeatureCount)
	if len(res.Methods) == 1 {
		t += ", method " + res.Methods[0]
	}
	return t
}

// longRows reshapes one score column into long-form rows in task feature
// order.
func longRows(res *types.FilterResult, col int, method string) []types.ReportRow {
	rows := make([]types.ReportRow, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = types.ReportRow{Name: r.Name, Kind: r.Kind, Method: method, Score: r.Scores[col]}
	}
	return rows
}

// sortRows orders rows by score with missing scores last regardless of
// direction. The sort is stable so ties keep task feature order.
func sortRows(rows []types.ReportRow, order types.SortOrder) []types.ReportRow {
	sorted := append([]types.ReportRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		mi, mj := types.IsMissing(sorted[i].Score), types.IsMissing(sorted[j].Score)
		if mi || mj {
			return !mi && mj
		}
		if order == types.SortAscending {
			return sorted[i].Score < sorted[j].Score
		}
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// maxNonMissing returns the largest count of non-missing scores across the
// result's method columns.
func maxNonMissing(res *types.FilterResult) int {
	max := 0
	for col := range res.Methods {
		count := 0
		for _, r := range res.Rows {
			if !types.IsMissing(r.Scores[col]) {
				count++
			}
		}
		if count > max {
			max = count
		}
	}
	return max
}
