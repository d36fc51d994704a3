// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filter-engine/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage stored filter results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewStore(storeDir(cmd))
		if err != nil {
			return err
		}
		defer st.Close()

		summaries, err := st.List(context.Background())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No stored results.")
			return nil
		}

		fmt.Printf("%-6s  %-20s  %-14s  %8s  %-24s  %s\n",
			"ID", "Task", "Kind", "Features", "Methods", "Created")
		fmt.Println(strings.Repeat("-", 100))
		for _, s := range summaries {
			fmt.Printf("%-6d  %-20s  %-14s  %8d  %-24s  %s\n",
				s.ID, s.TaskID, s.TaskKind, s.FeatureCount,
				strings.Join(s.Methods, ","), s.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid result id %q", args[0])
		}

		st, err := store.NewStore(storeDir(cmd))
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("deleted result %d\n", id)
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a stored result's score table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid result id %q", args[0])
		}

		st, err := store.NewStore(storeDir(cmd))
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := st.Get(context.Background(), id)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

func init() {
	resultsCmd.AddCommand(resultsListCmd, resultsShowCmd, resultsDeleteCmd)
	rootCmd.AddCommand(resultsCmd)
}
