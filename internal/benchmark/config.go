package benchmark

import (
	"fmt"
	"strings"

	"sortbench/internal/dataset"
)

// Default benchmark parameters.
var (
	DefaultSizes = []int{100, 1000, 10000, 50000, 100000}
	DefaultRuns  = 5
)

// Config describes the benchmark matrix and how each cell is measured.
type Config struct {
	Sizes         []int
	Runs          int
	Distributions []dataset.Distribution
	// Verify checks one output per cell against a reference sort.
	Verify bool
	// Seed for the random distribution; zero picks one from the clock.
	Seed uint64
}

// DefaultConfig returns the full matrix: three distributions, five sizes,
// five repetitions per cell.
func DefaultConfig() Config {
	return Config{
		Sizes:         append([]int(nil), DefaultSizes...),
		Runs:          DefaultRuns,
		Distributions: dataset.Distributions(),
		Verify:        true,
	}
}

// Validate returns an error describing every invalid field.
func (c Config) Validate() error {
	var problems []string

	if len(c.Sizes) == 0 {
		problems = append(problems, "at least one size is required")
	}
	for _, s := range c.Sizes {
		if s < 0 {
			problems = append(problems, fmt.Sprintf("size must not be negative, got: %d", s))
		}
	}
	if c.Runs <= 0 {
		problems = append(problems, fmt.Sprintf("runs must be positive, got: %d", c.Runs))
	}
	if len(c.Distributions) == 0 {
		problems = append(problems, "at least one distribution is required")
	}
	seen := make(map[dataset.Distribution]bool, len(c.Distributions))
	for _, d := range c.Distributions {
		if seen[d] {
			problems = append(problems, fmt.Sprintf("distribution listed more than once: %s", d))
		}
		seen[d] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid benchmark config:\n  %s", strings.Join(problems, "\n  "))
	}

	for _, d := range c.Distributions {
		if _, err := dataset.ParseDistribution(string(d)); err != nil {
			return err
		}
	}
	return nil
}
