// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the filter-engine CLI. Subcommands
// cover the pipeline end to end: compute filter values for a task, render
// them as a report, inspect the registered methods, and manage stored
// results.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/filter-engine/internal/filter"
	"github.com/pdiddy/filter-engine/internal/methods"
	"github.com/pdiddy/filter-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the filter-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "filter-engine",
	Short: "Feature importance scoring for supervised learning tasks",
	Long: `filter-engine computes per-feature importance scores for a supervised
learning task by dispatching to one or more registered scoring methods,
validating method/task/feature-kind compatibility up front, and merging the
method outputs into one table keyed by feature name.

Use compute to score a task, report to render scores as a bar chart,
methods to list the registered scoring methods, and results to manage
stored computations.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./filter-engine.yaml or ~/.config/filter-engine/config.yaml)")
	rootCmd.PersistentFlags().String("store-dir", "", "directory holding the result database (default: .filter-engine)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("filter-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "filter-engine"))
		}
	}

	viper.SetDefault("store.dir", ".filter-engine")
	viper.SetDefault("compute.methods", []string{methods.Default})
	viper.SetDefault("report.sort", "descending")
	viper.SetDefault("report.n_show", 20)

	viper.SetEnvPrefix("FILTER_ENGINE")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// newRegistry builds the built-in method registry with a PATH-backed
// package loader for methods that declare external helpers.
func newRegistry() *filter.Registry {
	reg := methods.Builtin()
	reg.UsePackageLoader(filter.NewExecLoader())
	return reg
}

// engineConfig materializes the effective configuration from viper after
// file, env, and default resolution.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Compute: types.ComputeConfig{
			Methods: viper.GetStringSlice("compute.methods"),
			NSelect: viper.GetInt("compute.n_select"),
		},
		Report: types.ReportConfig{
			Sort:        types.SortOrder(viper.GetString("report.sort")),
			NShow:       viper.GetInt("report.n_show"),
			ColorByType: viper.GetBool("report.color_by_type"),
		},
		Store: types.StoreConfig{
			Dir: viper.GetString("store.dir"),
		},
	}
}

// storeDir resolves the result store directory: flag, then config.
func storeDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("store-dir"); dir != "" {
		return dir
	}
	return engineConfig().Store.Dir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
