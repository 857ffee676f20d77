package benchmark

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"
	"sortbench/internal/telemetry"
)

// ErrIncorrectSort is returned when verification finds an unsorted output.
var ErrIncorrectSort = errors.New("sort produced incorrect output")

// Algorithm is one sorting variant under test. Sort must return the sorted
// data; in-place sorts return their argument.
type Algorithm struct {
	Name  string
	Label string
	Sort  func([]int) []int
}

// DefaultAlgorithms returns the two hand written sorts followed by the
// standard library sort used in place and as a copy.
func DefaultAlgorithms() []Algorithm {
	return []Algorithm{
		{Name: "insertion_sort", Label: "Insertion Sort", Sort: sorting.InsertionSort[[]int]},
		{Name: "merge_sort", Label: "Merge Sort", Sort: sorting.MergeSort[[]int]},
		{Name: "builtin_sort", Label: "Built-in (in place)", Sort: sorting.Builtin[[]int]},
		{Name: "builtin_sorted", Label: "Built-in (copy)", Sort: sorting.BuiltinSorted[[]int]},
	}
}

// Measurement is the averaged timing of one algorithm on one dataset.
type Measurement struct {
	Distribution dataset.Distribution
	Size         int
	Algorithm    Algorithm
	Average      time.Duration
}

// Observer receives progress events while the matrix runs.
type Observer interface {
	DistributionStarted(d dataset.Distribution)
	SizeStarted(d dataset.Distribution, size int)
	Measured(m Measurement)
}

// Recorder receives every individual timing sample.
type Recorder interface {
	ObserveSort(distribution, algorithm string, size int, elapsed time.Duration)
}

// Driver runs the benchmark matrix sequentially.
type Driver struct {
	cfg        Config
	algorithms []Algorithm
	gen        *dataset.Generator
	observers  []Observer
	recorder   Recorder
	now        func() time.Time
}

// Option configures a Driver.
type Option func(*Driver)

// WithAlgorithms replaces the default algorithm set.
func WithAlgorithms(algorithms ...Algorithm) Option {
	return func(d *Driver) { d.algorithms = algorithms }
}

// WithGenerator replaces the dataset generator seeded from the config.
func WithGenerator(g *dataset.Generator) Option {
	return func(d *Driver) { d.gen = g }
}

// WithObserver adds a progress observer.
func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

// WithRecorder sets the sink for individual samples.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithClock replaces time.Now for measurements.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// NewDriver creates a Driver for cfg.
func NewDriver(cfg Config, opts ...Option) *Driver {
	d := &Driver{
		cfg:        cfg,
		algorithms: DefaultAlgorithms(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.gen == nil {
		d.gen = dataset.NewGenerator(cfg.Seed)
	}
	return d
}

// Run measures every (distribution, size, algorithm) cell. The context is
// checked between cells only; a measurement in progress is never interrupted.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}
	if len(d.algorithms) == 0 {
		return nil, errors.New("no algorithms to benchmark")
	}
	names := make(map[string]bool, len(d.algorithms))
	for _, a := range d.algorithms {
		if names[a.Name] {
			return nil, fmt.Errorf("algorithm %q registered more than once", a.Name)
		}
		names[a.Name] = true
	}

	report := newReport(d.cfg, d.algorithms)
	report.Seed = d.gen.Seed()
	report.StartedAt = time.Now()

	for _, dist := range d.cfg.Distributions {
		for _, o := range d.observers {
			o.DistributionStarted(dist)
		}

		for _, size := range d.cfg.Sizes {
			data, err := d.gen.Generate(size, dist)
			if err != nil {
				return nil, err
			}
			telemetry.LogDebug("Dataset generated", "distribution", dist, "size", size)

			for _, o := range d.observers {
				o.SizeStarted(dist, size)
			}

			for _, algo := range d.algorithms {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				avg, err := d.measure(algo, data, dist)
				if err != nil {
					return nil, err
				}

				key := Key{Distribution: dist, Algorithm: algo.Name}
				report.Timings[key] = append(report.Timings[key], avg)

				m := Measurement{Distribution: dist, Size: size, Algorithm: algo, Average: avg}
				for _, o := range d.observers {
					o.Measured(m)
				}
				telemetry.LogDebug("Cell measured", "distribution", dist, "size", size, "algorithm", algo.Name, "avg", avg)
			}
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// measure returns the mean duration of cfg.Runs sorts of fresh copies of data.
// Copying happens before the clock starts.
func (d *Driver) measure(algo Algorithm, data []int, dist dataset.Distribution) (time.Duration, error) {
	var total time.Duration

	for run := 0; run < d.cfg.Runs; run++ {
		work := slices.Clone(data)

		start := d.now()
		out := algo.Sort(work)
		elapsed := d.now().Sub(start)

		total += elapsed
		if d.recorder != nil {
			d.recorder.ObserveSort(string(dist), algo.Name, len(data), elapsed)
		}

		if run == 0 && d.cfg.Verify {
			if err := verify(data, out); err != nil {
				return 0, fmt.Errorf("%w: %s on %s data of size %d: %v", ErrIncorrectSort, algo.Name, dist, len(data), err)
			}
		}
	}

	return total / time.Duration(d.cfg.Runs), nil
}

func verify(input, output []int) error {
	if len(output) != len(input) {
		return fmt.Errorf("got %d elements, want %d", len(output), len(input))
	}
	want := slices.Clone(input)
	slices.Sort(want)
	if i := firstMismatch(want, output); i >= 0 {
		return fmt.Errorf("element %d is %d, want %d", i, output[i], want[i])
	}
	return nil
}

func firstMismatch(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}
