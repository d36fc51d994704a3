// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/report"
	"github.com/pdiddy/filter-engine/internal/store"
	"github.com/pdiddy/filter-engine/internal/task"
	"github.com/pdiddy/filter-engine/pkg/types"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute filter values for a task",
	Long: `Compute loads a task descriptor, validates the requested scoring methods
against the task's kind and feature kinds, runs every method, and prints
the merged score table: one row per feature in task order, one score
column per method.

Method arguments can be passed as --arg key=value (single method only) or
--method-arg method:key=value (routed to the named method).`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().String("task", "", "task descriptor file (YAML)")
	computeCmd.Flags().StringSlice("methods", nil, "scoring methods to apply (default from config, else variance)")
	computeCmd.Flags().Int("n-select", 0, "number of features methods are asked for (0 = all)")
	computeCmd.Flags().StringArray("arg", nil, "shared method argument key=value (repeatable, single method only)")
	computeCmd.Flags().StringArray("method-arg", nil, "per-method argument method:key=value (repeatable)")
	computeCmd.Flags().Bool("save", false, "save the result to the store")
	computeCmd.Flags().Bool("json", false, "output the result as JSON")
	computeCmd.Flags().Bool("yaml", false, "output the result as YAML")
	computeCmd.MarkFlagRequired("task")

	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	taskPath, _ := cmd.Flags().GetString("task")
	t, err := task.Load(taskPath)
	if err != nil {
		return err
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	res, err := filter.Compute(newRegistry(), t, req)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err := store.NewStore(storeDir(cmd))
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.Save(context.Background(), res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved result %d\n", id)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return report.WriteJSON(res, os.Stdout)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		return report.WriteYAML(res, os.Stdout)
	}
	printResult(res)
	return nil
}

func requestFromFlags(cmd *cobra.Command) (filter.Request, error) {
	req := filter.Request{}
	cfg := engineConfig()

	req.Methods, _ = cmd.Flags().GetStringSlice("methods")
	if len(req.Methods) == 0 {
		req.Methods = cfg.Compute.Methods
	}
	req.NSelect, _ = cmd.Flags().GetInt("n-select")
	if req.NSelect == 0 {
		req.NSelect = cfg.Compute.NSelect
	}

	shared, _ := cmd.Flags().GetStringArray("arg")
	if len(shared) > 0 {
		bag, err := parseArgBag(shared)
		if err != nil {
			return req, err
		}
		req.Args = bag
	}

	perMethod, _ := cmd.Flags().GetStringArray("method-arg")
	methodArgs, err := parseMethodArgs(perMethod)
	if err != nil {
		return req, err
	}
	req.MethodArgs = methodArgs

	return req, nil
}

// parseArgBag parses repeated key=value pairs into one argument bag.
func parseArgBag(pairs []string) (filter.Args, error) {
	bag := make(filter.Args, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		bag[key] = parseArgValue(raw)
	}
	return bag, nil
}

// parseMethodArgs parses repeated method:key=value pairs, accumulating one
// argument bag per method in first-appearance order.
func parseMethodArgs(pairs []string) ([]filter.MethodArgs, error) {
	byMethod := make(map[string]filter.Args)
	var order []string
	for _, pair := range pairs {
		method, rest, ok := strings.Cut(pair, ":")
		if !ok || method == "" {
			return nil, fmt.Errorf("invalid method argument %q: expected method:key=value", pair)
		}
		key, raw, ok := strings.Cut(rest, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid method argument %q: expected method:key=value", pair)
		}
		if byMethod[method] == nil {
			byMethod[method] = make(filter.Args)
			order = append(order, method)
		}
		byMethod[method][key] = parseArgValue(raw)
	}

	out := make([]filter.MethodArgs, 0, len(order))
	for _, method := range order {
		out = append(out, filter.MethodArgs{Method: method, Args: byMethod[method]})
	}
	return out, nil
}

// parseArgValue converts a raw flag value to bool, int, or float when it
// parses as one, keeping it a string otherwise.
func parseArgValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// printResult writes the wide score table as fixed-width text. Legacy
// results keep their historical column order: name, value, kind.
func printResult(res *types.FilterResult) {
	fmt.Printf("%s (%s, %d features)\n", res.Task.ID, res.Task.Kind, res.Task.FeatureCount)

	if res.Legacy {
		fmt.Printf("%-24s  %14s  %-8s\n", "Feature", res.Methods[0], "Kind")
		fmt.Println(strings.Repeat("-", 50))
		for _, row := range res.Rows {
			fmt.Printf("%-24s  %14s  %-8s\n", truncateName(row.Name), formatScore(row.Scores[0]), row.Kind)
		}
		return
	}

	fmt.Printf("%-24s  %-8s", "Feature", "Kind")
	for _, m := range res.Methods {
		fmt.Printf("  %14s", m)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 34+16*len(res.Methods)))

	for _, row := range res.Rows {
		fmt.Printf("%-24s  %-8s", truncateName(row.Name), row.Kind)
		for _, score := range row.Scores {
			fmt.Printf("  %14s", formatScore(score))
		}
		fmt.Println()
	}
}

func truncateName(name string) string {
	if len(name) > 24 {
		return name[:21] + "..."
	}
	return name
}

func formatScore(score float64) string {
	if types.IsMissing(score) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", score)
}
