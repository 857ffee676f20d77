package benchmark

import (
	"time"

	"sortbench/internal/dataset"
)

// Key identifies one timing series.
type Key struct {
	Distribution dataset.Distribution
	Algorithm    string
}

// Report holds the measurements of one pass over the benchmark matrix.
// Timings[k] has one average per entry of Sizes, in the same order.
type Report struct {
	Sizes         []int
	Runs          int
	Seed          uint64
	Distributions []dataset.Distribution
	Algorithms    []Algorithm
	Timings       map[Key][]time.Duration
	StartedAt     time.Time
	Elapsed       time.Duration
}

func newReport(cfg Config, algorithms []Algorithm) *Report {
	return &Report{
		Sizes:         append([]int(nil), cfg.Sizes...),
		Runs:          cfg.Runs,
		Seed:          cfg.Seed,
		Distributions: append([]dataset.Distribution(nil), cfg.Distributions...),
		Algorithms:    append([]Algorithm(nil), algorithms...),
		Timings:       make(map[Key][]time.Duration),
	}
}

// Series returns the averages recorded for a distribution and algorithm.
func (r *Report) Series(d dataset.Distribution, algorithm string) []time.Duration {
	return r.Timings[Key{Distribution: d, Algorithm: algorithm}]
}

// Run flattens the report into its persisted form.
func (r *Report) Run() Run {
	run := Run{
		Timestamp: r.StartedAt,
		Runs:      r.Runs,
		Seed:      r.Seed,
		Sizes:     append([]int(nil), r.Sizes...),
	}
	for _, d := range r.Distributions {
		for _, a := range r.Algorithms {
			for i, avg := range r.Series(d, a.Name) {
				run.Results = append(run.Results, Result{
					Distribution: string(d),
					Algorithm:    a.Name,
					Size:         r.Sizes[i],
					AvgSeconds:   avg.Seconds(),
				})
			}
		}
	}
	return run
}

// Result represents the averaged timing of one benchmark cell.
type Result struct {
	Distribution string  `json:"distribution"`
	Algorithm    string  `json:"algorithm"`
	Size         int     `json:"size"`
	AvgSeconds   float64 `json:"avg_seconds"`
}

// Run represents a collection of benchmark results from a single execution.
type Run struct {
	ID        int64     `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Runs      int       `json:"runs"`
	Seed      uint64    `json:"seed,omitempty"`
	Sizes     []int     `json:"sizes"`
	Results   []Result  `json:"results"`
}
