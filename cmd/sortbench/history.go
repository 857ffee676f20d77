package main

import (
	"fmt"
	"strconv"

	"sortbench/internal/benchmark"
	"sortbench/internal/config"
	"sortbench/internal/db"
	"sortbench/internal/report"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List benchmark runs saved with --save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := loadRuns(cmd)
			if err != nil {
				return err
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[len(runs)-limit:]
			}
			return report.WriteHistory(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most recent N runs")
	return cmd
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [previous-id current-id]",
		Short: "Compare two stored runs (default: the two most recent)",
		Long: `Compares the average time of every cell present in both runs and marks
cells that changed by more than --threshold percent.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 run IDs, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Current()
			if err != nil {
				return err
			}
			runs, err := loadRuns(cmd)
			if err != nil {
				return err
			}

			var prev, curr *benchmark.Run
			if len(args) == 2 {
				if prev, err = findRun(runs, args[0]); err != nil {
					return err
				}
				if curr, err = findRun(runs, args[1]); err != nil {
					return err
				}
			} else {
				if len(runs) < 2 {
					return fmt.Errorf("need at least two stored runs to compare, found %d", len(runs))
				}
				prev, curr = &runs[len(runs)-2], &runs[len(runs)-1]
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run #%d -> run #%d\n", prev.ID, curr.ID)
			comparisons := benchmark.Compare(*prev, *curr)
			if _, err := report.WriteComparison(cmd.OutOrStdout(), comparisons, settings.Threshold); err != nil {
				return err
			}
			if settings.FailOnRegression {
				return regressionError(comparisons, settings.Threshold)
			}
			return nil
		},
	}
}

func loadRuns(cmd *cobra.Command) ([]benchmark.Run, error) {
	settings, err := config.Current()
	if err != nil {
		return nil, err
	}
	store, err := newStoreFunc(db.StoreConfig{Type: settings.StoreType, ConnectionString: settings.StorePath})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	return store.LoadAll(cmd.Context())
}

func findRun(runs []benchmark.Run, id string) (*benchmark.Run, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid run ID %q", id)
	}
	for i := range runs {
		if runs[i].ID == n {
			return &runs[i], nil
		}
	}
	return nil, fmt.Errorf("run #%d not found", n)
}
