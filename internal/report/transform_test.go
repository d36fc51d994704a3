// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/pkg/types"
)

// wideResult builds a single-method result with the given scores in task
// feature order. Feature names are f0, f1, ...
func wideResult(method string, scores ...float64) *types.FilterResult {
	res := &types.FilterResult{
		Task: types.TaskDescription{
			ID:           "bench",
			Kind:         types.TaskClassification,
			FeatureCount: len(scores),
			CountByKind:  map[types.FeatureKind]int{types.FeatureNumeric: len(scores)},
		},
		Methods: []string{method},
	}
	for i, s := range scores {
		res.Rows = append(res.Rows, types.FilterRow{
			Name:   fmt.Sprintf("f%d", i),
			Kind:   types.FeatureNumeric,
			Scores: []float64{s},
		})
	}
	return res
}

func missing() float64 { return types.MissingScore() }

func TestToReportDescendingTruncates(t *testing.T) {
	// 10 features, two of them unscored.
	res := wideResult("m", 0.1, 0.9, missing(), 0.5, 0.3, 0.7, missing(), 0.2, 0.8, 0.4)

	rep, err := ToReport(res, Options{Sort: types.SortDescending, NShow: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Facets) != 1 {
		t.Fatalf("facets = %d, want 1", len(rep.Facets))
	}
	rows := rep.Facets[0].Rows
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want exactly 3", len(rows))
	}
	want := []struct {
		name  string
		score float64
	}{{"f1", 0.9}, {"f8", 0.8}, {"f5", 0.7}}
	for i, w := range want {
		if rows[i].Name != w.name || rows[i].Score != w.score {
			t.Errorf("row %d = %s:%v, want %s:%v", i, rows[i].Name, rows[i].Score, w.name, w.score)
		}
	}
}

func TestToReportAscending(t *testing.T) {
	res := wideResult("m", 0.3, 0.1, 0.2)

	rep, err := ToReport(res, Options{Sort: types.SortAscending, NShow: 2})
	if err != nil {
		t.Fatal(err)
	}
	rows := rep.Facets[0].Rows
	if rows[0].Name != "f1" || rows[1].Name != "f2" {
		t.Errorf("rows = %v, want f1 then f2", rows)
	}
}

func TestToReportMissingSortsLast(t *testing.T) {
	res := wideResult("m", missing(), 0.2, 0.8)

	for _, order := range []types.SortOrder{types.SortAscending, types.SortDescending} {
		rep, err := ToReport(res, Options{Sort: order, NShow: 3})
		if err != nil {
			t.Fatal(err)
		}
		rows := rep.Facets[0].Rows
		// NShow clamps to the two non-missing scores.
		if len(rows) != 2 {
			t.Fatalf("%s: rows = %d, want 2 after clamping to non-missing", order, len(rows))
		}
		for _, r := range rows {
			if types.IsMissing(r.Score) {
				t.Errorf("%s: missing row made it above the cut", order)
			}
		}
	}
}

func TestToReportNonePreservesTaskOrder(t *testing.T) {
	res := wideResult("m", 0.2, 0.9, missing(), 0.5)

	rep, err := ToReport(res, Options{Sort: types.SortNone, NShow: 2})
	if err != nil {
		t.Fatal(err)
	}
	rows := rep.Facets[0].Rows
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want the full table under sort=none", len(rows))
	}
	for i, wantName := range []string{"f0", "f1", "f2", "f3"} {
		if rows[i].Name != wantName {
			t.Errorf("row %d = %s, want %s (task feature order)", i, rows[i].Name, wantName)
		}
	}
}

func TestToReportPerMethodIndependence(t *testing.T) {
	res := &types.FilterResult{
		Task: types.TaskDescription{ID: "multi", Kind: types.TaskClassification, FeatureCount: 3},
		Methods: []string{"m1", "m2"},
		Rows: []types.FilterRow{
			{Name: "a", Kind: types.FeatureNumeric, Scores: []float64{0.1, 0.9}},
			{Name: "b", Kind: types.FeatureNumeric, Scores: []float64{0.5, missing()}},
			{Name: "c", Kind: types.FeatureNumeric, Scores: []float64{0.9, 0.1}},
		},
	}

	rep, err := ToReport(res, Options{Sort: types.SortDescending, NShow: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Facets) != 2 {
		t.Fatalf("facets = %d, want one per method", len(rep.Facets))
	}

	m1 := rep.Facets[0].Rows
	if m1[0].Name != "c" || m1[1].Name != "b" {
		t.Errorf("m1 rows = [%s %s], want [c b]", m1[0].Name, m1[1].Name)
	}
	m2 := rep.Facets[1].Rows
	if m2[0].Name != "a" || m2[1].Name != "c" {
		t.Errorf("m2 rows = [%s %s], want [a c]", m2[0].Name, m2[1].Name)
	}
	for _, f := range rep.Facets {
		for _, r := range f.Rows {
			if r.Method != f.Method {
				t.Errorf("row %s carries method %s inside facet %s", r.Name, r.Method, f.Method)
			}
		}
	}
}

func TestToReportEndToEndScenario(t *testing.T) {
	res := &types.FilterResult{
		Task: types.TaskDescription{ID: "abc", Kind: types.TaskClassification, FeatureCount: 3},
		Methods: []string{"m2"},
		Rows: []types.FilterRow{
			{Name: "a", Kind: types.FeatureNumeric, Scores: []float64{0.9}},
			{Name: "b", Kind: types.FeatureFactor, Scores: []float64{0.5}},
			{Name: "c", Kind: types.FeatureNumeric, Scores: []float64{0.1}},
		},
	}

	rep, err := ToReport(res, Options{Sort: types.SortDescending, NShow: 2})
	if err != nil {
		t.Fatal(err)
	}
	rows := rep.Facets[0].Rows
	if len(rows) != 2 || rows[0].Name != "a" || rows[0].Score != 0.9 || rows[1].Name != "b" || rows[1].Score != 0.5 {
		t.Errorf("rows = %v, want [a:0.9 b:0.5]", rows)
	}
}

func TestToReportTitles(t *testing.T) {
	single := wideResult("variance", 0.1, 0.2)
	rep, err := ToReport(single, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Title != "bench (2 features), method variance" {
		t.Errorf("single-method title = %q", rep.Title)
	}

	multi := &types.FilterResult{
		Task:    types.TaskDescription{ID: "bench", FeatureCount: 2},
		Methods: []string{"m1", "m2"},
		Rows: []types.FilterRow{
			{Name: "a", Scores: []float64{1, 2}},
			{Name: "b", Scores: []float64{3, 4}},
		},
	}
	rep, err = ToReport(multi, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Title != "bench (2 features)" {
		t.Errorf("multi-method title = %q", rep.Title)
	}
}

func TestToReportRejectsLegacyResult(t *testing.T) {
	res := wideResult("value", 0.1)
	res.Legacy = true

	if _, err := ToReport(res, Options{}); err == nil {
		t.Error("legacy result must be rejected")
	}
}

func TestToReportInvalidParameters(t *testing.T) {
	res := wideResult("m", 0.1)

	tests := []struct {
		name string
		opts Options
	}{
		{"unknown sort", Options{Sort: "sideways"}},
		{"negative n_show", Options{NShow: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToReport(res, tt.opts)
			var invalid *filter.InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Errorf("err = %v, want InvalidParameterError", err)
			}
		})
	}
}

func TestToReportDoesNotMutateResult(t *testing.T) {
	res := wideResult("m", 0.1, 0.9, 0.5)
	if _, err := ToReport(res, Options{Sort: types.SortDescending, NShow: 2}); err != nil {
		t.Fatal(err)
	}
	for i, wantName := range []string{"f0", "f1", "f2"} {
		if res.Rows[i].Name != wantName {
			t.Fatal("transform reordered the input result in place")
		}
	}
}
