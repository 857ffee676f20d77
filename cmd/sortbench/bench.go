package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/config"
	"sortbench/internal/db"
	"sortbench/internal/report"
	"sortbench/internal/telemetry"

	"github.com/spf13/cobra"
)

func runBenchmark(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}
	cfg, err := settings.BenchmarkConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	metrics := telemetry.NewMetrics()
	if settings.MetricsAddr != "" {
		serverCtx, stopServer := context.WithCancel(ctx)
		defer stopServer()
		go func() {
			if err := telemetry.StartMetricsServer(serverCtx, settings.MetricsAddr, metrics); err != nil {
				telemetry.LogError("Metrics server failed", err, "addr", settings.MetricsAddr)
			}
		}()
	}

	// JSON output must stay parseable, so progress goes to stderr.
	progressOut := out
	if settings.Format == "json" {
		progressOut = cmd.ErrOrStderr()
	}

	fmt.Fprintln(progressOut, "Starting benchmark...")
	driver := benchmark.NewDriver(cfg,
		benchmark.WithObserver(report.NewProgress(progressOut)),
		benchmark.WithRecorder(metrics),
	)
	rep, err := driver.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(progressOut, "\nBenchmark finished.")

	run := rep.Run()
	if err := writeReport(out, rep, run, settings); err != nil {
		return err
	}

	if settings.MetricsFile != "" {
		if err := metrics.WriteTextfile(settings.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		telemetry.LogDebug("Metrics written", "path", settings.MetricsFile)
	}

	if !settings.Save && !settings.Compare {
		return nil
	}
	return recordRun(ctx, cmd, &run, settings)
}

func writeReport(w io.Writer, rep *benchmark.Report, run benchmark.Run, settings config.Settings) error {
	switch settings.Format {
	case "json":
		return report.WriteJSON(w, run)
	case "markdown":
		rendered, err := report.RenderMarkdown(report.Markdown(rep, settings.Narrative), settings.NoColor)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, rendered)
		return err
	default:
		if err := report.WriteTables(w, rep); err != nil {
			return err
		}
		if settings.Narrative {
			report.WriteNarrative(w)
		}
		return nil
	}
}

// recordRun compares run with the latest stored one and saves it, as
// requested by the settings.
func recordRun(ctx context.Context, cmd *cobra.Command, run *benchmark.Run, settings config.Settings) error {
	store, err := newStoreFunc(db.StoreConfig{Type: settings.StoreType, ConnectionString: settings.StorePath})
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	// Keep stdout clean for JSON output
	w := cmd.OutOrStdout()
	if settings.Format == "json" {
		w = cmd.ErrOrStderr()
	}

	var comparisons []benchmark.Comparison
	if settings.Compare {
		prev, err := store.LoadLatest(ctx)
		if err != nil {
			return fmt.Errorf("failed to load previous run: %w", err)
		}
		if prev == nil {
			fmt.Fprintln(w, "\nNo previous run to compare with.")
		} else {
			comparisons = benchmark.Compare(*prev, *run)
			if _, err := report.WriteComparison(w, comparisons, settings.Threshold); err != nil {
				return err
			}
		}
	}

	if settings.Save {
		if err := store.Save(ctx, run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		telemetry.LogDebug("Run saved", "id", run.ID, "store", settings.StoreType)
		fmt.Fprintf(w, "\nResults saved to history (run #%d)\n", run.ID)
	}

	if settings.FailOnRegression {
		return regressionError(comparisons, settings.Threshold)
	}
	return nil
}

// regressionError lists the cells slower than threshold, or returns nil
// when there are none.
func regressionError(comparisons []benchmark.Comparison, threshold float64) error {
	var slower []string
	for _, c := range comparisons {
		if c.Regressed(threshold) {
			telemetry.LogInfo("Regression", "cell", c.String())
			slower = append(slower, c.String())
		}
	}
	if len(slower) == 0 {
		return nil
	}
	return fmt.Errorf("performance regression detected: %d cells more than %.2f%% slower: %s",
		len(slower), threshold, strings.Join(slower, ", "))
}
