// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filter-engine/internal/methods"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the registered scoring methods",
	Run: func(cmd *cobra.Command, args []string) {
		reg := methods.Builtin()

		fmt.Printf("%-14s  %-36s  %s\n", "Method", "Task kinds", "Feature kinds")
		fmt.Println(strings.Repeat("-", 80))

		for _, name := range reg.Names() {
			m, _ := reg.Lookup(name)
			taskKinds := make([]string, len(m.TaskKinds))
			for i, k := range m.TaskKinds {
				taskKinds[i] = string(k)
			}
			featureKinds := make([]string, len(m.FeatureKinds))
			for i, k := range m.FeatureKinds {
				featureKinds[i] = string(k)
			}
			fmt.Printf("%-14s  %-36s  %s\n", name,
				strings.Join(taskKinds, ", "), strings.Join(featureKinds, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}
