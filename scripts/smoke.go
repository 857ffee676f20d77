//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
	"sortbench/internal/db"
	"sortbench/internal/report"
	"sortbench/internal/telemetry"
)

// Runs a tiny matrix through every history backend available without a
// server: go run scripts/smoke.go
func main() {
	fmt.Println("Starting End-to-End Smoke Test...")

	tmpDir, err := os.MkdirTemp("", "sortbench-smoke-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)
	fmt.Printf("Workspace: %s\n", tmpDir)

	cfg := benchmark.Config{
		Sizes:         []int{10, 200},
		Runs:          2,
		Distributions: dataset.Distributions(),
		Verify:        true,
		Seed:          42,
	}
	metrics := telemetry.NewMetrics()
	driver := benchmark.NewDriver(cfg,
		benchmark.WithObserver(report.NewProgress(os.Stdout)),
		benchmark.WithRecorder(metrics),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rep, err := driver.Run(ctx)
	if err != nil {
		fmt.Printf("Benchmark Failed: %v\n", err)
		os.Exit(1)
	}
	if err := report.WriteTables(os.Stdout, rep); err != nil {
		fmt.Printf("Report Failed: %v\n", err)
		os.Exit(1)
	}

	run := rep.Run()
	stores := []db.StoreConfig{
		{Type: "json", ConnectionString: filepath.Join(tmpDir, "history.json")},
		{Type: "sqlite", ConnectionString: filepath.Join(tmpDir, "history.db")},
	}
	for _, sc := range stores {
		if err := roundTrip(ctx, sc, run); err != nil {
			fmt.Printf("Store %s Failed: %v\n", sc.Type, err)
			os.Exit(1)
		}
		fmt.Printf("Store %s OK\n", sc.Type)
	}

	if err := metrics.WriteTextfile(filepath.Join(tmpDir, "sortbench.prom")); err != nil {
		fmt.Printf("Metrics Failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Smoke Test Complete.")
}

func roundTrip(ctx context.Context, sc db.StoreConfig, run benchmark.Run) error {
	store, err := db.NewStore(sc)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, &run); err != nil {
		return err
	}
	latest, err := store.LoadLatest(ctx)
	if err != nil {
		return err
	}
	if latest == nil || latest.ID != run.ID || len(latest.Results) != len(run.Results) {
		return fmt.Errorf("stored run does not match the saved one")
	}
	return nil
}
