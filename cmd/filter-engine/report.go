// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/report"
	"github.com/pdiddy/filter-engine/internal/store"
	"github.com/pdiddy/filter-engine/internal/task"
	"github.com/pdiddy/filter-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render filter values as a sortable bar-chart report",
	Long: `Report reshapes a filter result into long form (one row per feature and
method), sorts and truncates each method's slice independently, and renders
the outcome as a text or HTML bar chart. Multiple methods render as one
facet per method.

The result comes either from the store (--id) or from a fresh computation
(--task plus optional --methods).`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Int64("id", 0, "stored result id to render")
	reportCmd.Flags().String("task", "", "task descriptor file to compute and render")
	reportCmd.Flags().StringSlice("methods", nil, "scoring methods when computing from --task")
	reportCmd.Flags().String("sort", "", "row order per method: descending, ascending, or none")
	reportCmd.Flags().Int("top", 0, "rows shown per method (default 20)")
	reportCmd.Flags().Bool("color-by-type", false, "group bars by feature kind")
	reportCmd.Flags().String("format", "text", "output format: text, html, json, or yaml")
	reportCmd.Flags().String("out", "", "output file (default stdout)")
	reportCmd.MarkFlagsMutuallyExclusive("id", "task")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	res, err := resolveResult(cmd)
	if err != nil {
		return err
	}

	cfg := engineConfig()
	sortOrder := cfg.Report.Sort
	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		sortOrder = types.SortOrder(s)
	}
	nShow, _ := cmd.Flags().GetInt("top")
	if nShow == 0 {
		nShow = cfg.Report.NShow
	}
	colorByType := cfg.Report.ColorByType
	if set, _ := cmd.Flags().GetBool("color-by-type"); set {
		colorByType = true
	}

	rep, err := report.ToReport(res, report.Options{
		Sort:        sortOrder,
		NShow:       nShow,
		ColorByType: colorByType,
	})
	if err != nil {
		return err
	}

	w, closeFn, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text":
		return report.TextRenderer{}.Render(rep, w)
	case "html":
		return report.HTMLRenderer{}.Render(rep, w)
	case "json":
		return report.WriteJSON(rep, w)
	case "yaml":
		return report.WriteYAML(rep, w)
	}
	return fmt.Errorf("unknown format %q: expected text, html, json, or yaml", format)
}

// resolveResult loads a stored result or computes one from a task file.
func resolveResult(cmd *cobra.Command) (*types.FilterResult, error) {
	if id, _ := cmd.Flags().GetInt64("id"); id != 0 {
		st, err := store.NewStore(storeDir(cmd))
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Get(context.Background(), id)
	}

	taskPath, _ := cmd.Flags().GetString("task")
	if taskPath == "" {
		return nil, fmt.Errorf("either --id or --task is required")
	}
	t, err := task.Load(taskPath)
	if err != nil {
		return nil, err
	}

	methodNames, _ := cmd.Flags().GetStringSlice("methods")
	if len(methodNames) == 0 {
		methodNames = engineConfig().Compute.Methods
	}
	return filter.Compute(newRegistry(), t, filter.Request{Methods: methodNames})
}

func outputWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
