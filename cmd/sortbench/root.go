package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"sortbench/internal/benchmark"
	"sortbench/internal/config"
	"sortbench/internal/db"
	"sortbench/internal/report"
	"sortbench/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit

// newStoreFunc allows mocking the history store in tests.
var newStoreFunc = func(cfg db.StoreConfig) (benchmark.Store, error) {
	return db.NewStore(cfg)
}

// newRootCmd builds the command tree. Running the root command with no
// arguments benchmarks the full default matrix.
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sortbench",
		Short: "Benchmark insertion sort, merge sort and the built-in sort",
		Long: `sortbench times insertion sort, merge sort and the standard library sort
(in place and as a copy) on random, sorted and reverse sorted integer datasets
of several sizes, then prints the average time of every cell.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cfgFile); err != nil {
				return err
			}
			if err := config.ValidateConfig(); err != nil {
				return err
			}
			telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
			if viper.GetBool("no_color") {
				report.DisableColor()
			}
			return nil
		},
		RunE: runBenchmark,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./sortbench.yaml)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("log-file", "", "Also write logs to this file")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("store", "json", "History store type (json, sqlite, postgres)")
	pf.String("store-path", "", "History file path, or DSN for postgres")
	pf.Float64("threshold", 10.0, "Percentage change reported as slower or faster")
	pf.Bool("fail-on-regression", false, "Exit with an error when a compared cell got slower than the threshold")

	f := rootCmd.Flags()
	f.IntSlice("sizes", benchmark.DefaultSizes, "Dataset sizes to benchmark")
	f.Int("runs", benchmark.DefaultRuns, "Repetitions averaged per cell")
	f.StringSlice("distributions", []string{"random", "sorted", "reverse_sorted"}, "Dataset distributions to benchmark")
	f.Uint64("seed", 0, "Seed for random datasets (0 picks one from the clock)")
	f.Bool("verify", true, "Check every sort output against a reference sort")
	f.String("format", "text", "Report format (text, markdown, json)")
	f.Bool("narrative", true, "Print the analysis text after the tables")
	f.Bool("save", false, "Save the results to the history store")
	f.Bool("compare", false, "Compare the results with the latest stored run")
	f.String("metrics-file", "", "Write Prometheus metrics to this file when done")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address while running")

	bindFlags(rootCmd, map[string]string{
		"verbose":            "verbose",
		"log-file":           "log_file",
		"no-color":           "no_color",
		"store":              "store.type",
		"store-path":         "store.path",
		"threshold":          "threshold",
		"fail-on-regression": "fail_on_regression",
		"sizes":              "sizes",
		"runs":               "runs",
		"distributions":      "distributions",
		"seed":               "seed",
		"verify":             "verify",
		"format":             "format",
		"narrative":          "narrative",
		"save":               "save",
		"compare":            "compare",
		"metrics-file":       "metrics_file",
		"metrics-addr":       "metrics_addr",
	})

	rootCmd.AddCommand(newHistoryCmd(), newCompareCmd(), NewVersionCmd())
	return rootCmd
}

func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		var fl *pflag.Flag
		if fl = cmd.Flags().Lookup(name); fl == nil {
			fl = cmd.PersistentFlags().Lookup(name)
		}
		viper.BindPFlag(key, fl)
	}
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		exit(1)
	}
}
