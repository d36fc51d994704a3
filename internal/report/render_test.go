// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdiddy/filter-engine/pkg/types"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	res := wideResult("variance", 0.9, missing(), 0.1)
	rep, err := ToReport(res, Options{Sort: types.SortNone})
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func TestTextRenderer(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := (TextRenderer{}).Render(rep, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, rep.Title) {
		t.Error("output lacks the report title")
	}
	if !strings.Contains(out, "f0") || !strings.Contains(out, "0.9000") {
		t.Error("output lacks the top feature row")
	}
	if !strings.Contains(out, "█") {
		t.Error("output lacks a bar")
	}
	if !strings.Contains(out, "n/a") {
		t.Error("missing scores must render as n/a")
	}
}

func TestTextRendererMultiFacet(t *testing.T) {
	res := &types.FilterResult{
		Task:    types.TaskDescription{ID: "multi", FeatureCount: 1},
		Methods: []string{"m1", "m2"},
		Rows:    []types.FilterRow{{Name: "a", Kind: types.FeatureNumeric, Scores: []float64{1, 2}}},
	}
	rep, err := ToReport(res, Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := (TextRenderer{}).Render(rep, &buf); err != nil {
		t.Fatal(err)
	}
	for _, header := range []string{"[m1]", "[m2]"} {
		if !strings.Contains(buf.String(), header) {
			t.Errorf("multi-method output lacks facet header %s", header)
		}
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		score, lo, hi float64
		width, want   int
	}{
		{10, 0, 10, 30, 30}, // max fills the bar
		{0, 0, 10, 30, 1},   // min draws one cell
		{5, 5, 5, 30, 30},   // degenerate range
	}
	for _, tt := range tests {
		if got := barLength(tt.score, tt.lo, tt.hi, tt.width); got != tt.want {
			t.Errorf("barLength(%v, %v, %v, %d) = %d, want %d",
				tt.score, tt.lo, tt.hi, tt.width, got, tt.want)
		}
	}
}

func TestHTMLRenderer(t *testing.T) {
	rep := sampleReport(t)
	rep.ColorByType = true

	var buf bytes.Buffer
	if err := (HTMLRenderer{}).Render(rep, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"<!DOCTYPE html>", rep.Title, "f0", "class=\"bar numeric\""} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output lacks %q", want)
		}
	}
}

func TestWriteJSONEncodesMissingAsNull(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := WriteJSON(rep, &buf); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !strings.Contains(buf.String(), "null") {
		t.Error("missing score should serialize as null")
	}
}
