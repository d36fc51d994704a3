// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filter-engine/pkg/types"
)

// Renderer turns a report into some output representation.
type Renderer interface {
	Render(r *Report, w io.Writer) error
}

// TextRenderer draws each facet as a fixed-width table with a bar column
// scaled to the facet's score range.
type TextRenderer struct {
	// BarWidth is the bar column width in characters (default 30).
	BarWidth int
}

// Render writes the report as text tables, one per facet.
func (tr TextRenderer) Render(r *Report, w io.Writer) error {
	barWidth := tr.BarWidth
	if barWidth <= 0 {
		barWidth = 30
	}

	fmt.Fprintln(w, r.Title)
	for _, facet := range r.Facets {
		if len(r.Facets) > 1 {
			fmt.Fprintf(w, "\n[%s]\n", facet.Method)
		} else {
			fmt.Fprintln(w)
		}

		if r.ColorByType {
			fmt.Fprintf(w, "%-4s  %-24s  %-8s  %10s  %s\n", "Rank", "Feature", "Kind", "Score", "")
		} else {
			fmt.Fprintf(w, "%-4s  %-24s  %10s  %s\n", "Rank", "Feature", "Score", "")
		}
		fmt.Fprintln(w, strings.Repeat("-", 52+barWidth))

		lo, hi := scoreRange(facet.Rows)
		for i, row := range facet.Rows {
			name := row.Name
			if len(name) > 24 {
				name = name[:21] + "..."
			}
			score, bar := "n/a", ""
			if !types.IsMissing(row.Score) {
				score = fmt.Sprintf("%.4f", row.Score)
				bar = strings.Repeat("█", barLength(row.Score, lo, hi, barWidth))
			}
			if r.ColorByType {
				fmt.Fprintf(w, "%-4d  %-24s  %-8s  %10s  %s\n", i+1, name, row.Kind, score, bar)
			} else {
				fmt.Fprintf(w, "%-4d  %-24s  %10s  %s\n", i+1, name, score, bar)
			}
		}
	}
	return nil
}

// scoreRange returns the min and max non-missing scores of a facet.
func scoreRange(rows []types.ReportRow) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		if types.IsMissing(row.Score) {
			continue
		}
		if row.Score < lo {
			lo = row.Score
		}
		if row.Score > hi {
			hi = row.Score
		}
	}
	return lo, hi
}

// barLength scales a score onto [1, width]: the facet minimum draws one
// cell, the maximum the full width.
func barLength(score, lo, hi float64, width int) int {
	if hi <= lo {
		return width
	}
	n := 1 + int((score-lo)/(hi-lo)*float64(width-1))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

//go:embed templates/report.html
var templateFS embed.FS

// HTMLRenderer draws the report as a static HTML page, one bar chart per
// facet with independent scales.
type HTMLRenderer struct{}

type htmlBar struct {
	Name    string
	Kind    types.FeatureKind
	Score   string
	Percent int
	Missing bool
}

type htmlFacet struct {
	Method string
	Bars   []htmlBar
}

type htmlPage struct {
	Title       string
	ColorByType bool
	Facets      []htmlFacet
}

// Render writes the report as a self-contained HTML page.
func (HTMLRenderer) Render(r *Report, w io.Writer) error {
	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	page := htmlPage{Title: r.Title, ColorByType: r.ColorByType}
	for _, facet := range r.Facets {
		hf := htmlFacet{Method: facet.Method}
		lo, hi := scoreRange(facet.Rows)
		for _, row := range facet.Rows {
			bar := htmlBar{Name: row.Name, Kind: row.Kind, Missing: types.IsMissing(row.Score)}
			if !bar.Missing {
				bar.Score = fmt.Sprintf("%.4f", row.Score)
				bar.Percent = barLength(row.Score, lo, hi, 100)
			}
			hf.Bars = append(hf.Bars, bar)
		}
		page.Facets = append(page.Facets, hf)
	}

	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML.
func WriteYAML(v any, w io.Writer) error {
	return yaml.NewEncoder(w).Encode(v)
}
