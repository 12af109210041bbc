// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/axe/internal/history"
	"github.com/pdiddy/axe/internal/render"
	"github.com/pdiddy/axe/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View or manage conversion statistics",
	Long: `Stats shows the lifetime conversion counters, the recent per-item history,
or resets everything to zero.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Bool("show", false, "show lifetime statistics (default)")
	statsCmd.Flags().Bool("reset", false, "reset all statistics and timestamps")
	statsCmd.Flags().Bool("history", false, "show recently processed items")
	statsCmd.Flags().Int("limit", 20, "maximum history items to show")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	store := stats.NewStore(dataDir)

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if err := store.Reset(); err != nil {
			return fmt.Errorf("resetting statistics: %w", err)
		}
		fmt.Println("Statistics reset.")
		return nil
	}

	if showHistory, _ := cmd.Flags().GetBool("history"); showHistory {
		limit, _ := cmd.Flags().GetInt("limit")
		hist, err := history.Open(dataDir)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer hist.Close()

		records, err := hist.Recent(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No items processed yet.")
			return nil
		}
		fmt.Println(render.History(records))
		return nil
	}

	st, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Println(render.Lifetime(st))
	return nil
}
