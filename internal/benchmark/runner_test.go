package benchmark

import (
	"context"
	"slices"
	"testing"
	"time"

	"sortbench/internal/dataset"
	sberrors "sortbench/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
	cells  []Measurement
}

func (o *recordingObserver) DistributionStarted(d dataset.Distribution) {
	o.events = append(o.events, "dist:"+string(d))
}

func (o *recordingObserver) SizeStarted(d dataset.Distribution, size int) {
	o.events = append(o.events, "size")
}

func (o *recordingObserver) Measured(m Measurement) {
	o.events = append(o.events, "cell:"+m.Algorithm.Name)
	o.cells = append(o.cells, m)
}

type countingRecorder struct {
	samples map[string]int
}

func (r *countingRecorder) ObserveSort(distribution, algorithm string, size int, elapsed time.Duration) {
	if r.samples == nil {
		r.samples = make(map[string]int)
	}
	r.samples[distribution+"/"+algorithm]++
}

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func smallConfig() Config {
	return Config{
		Sizes:         []int{0, 10, 50},
		Runs:          2,
		Distributions: dataset.Distributions(),
		Verify:        true,
		Seed:          1,
	}
}

func TestDriver_Run(t *testing.T) {
	cfg := smallConfig()
	report, err := NewDriver(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Sizes, report.Sizes)
	assert.Equal(t, 2, report.Runs)
	assert.Len(t, report.Algorithms, 4)
	assert.Len(t, report.Timings, 3*4)

	for _, d := range dataset.Distributions() {
		for _, a := range DefaultAlgorithms() {
			series := report.Series(d, a.Name)
			assert.Len(t, series, len(cfg.Sizes), "%s/%s", d, a.Name)
			for _, avg := range series {
				assert.GreaterOrEqual(t, avg, time.Duration(0))
			}
		}
	}
	assert.False(t, report.StartedAt.IsZero())
}

func TestDriver_AveragesWithClock(t *testing.T) {
	cfg := smallConfig()
	cfg.Runs = 5

	report, err := NewDriver(cfg, WithClock(steppingClock(3*time.Millisecond))).Run(context.Background())
	require.NoError(t, err)

	for _, series := range report.Timings {
		for _, avg := range series {
			assert.Equal(t, 3*time.Millisecond, avg)
		}
	}
}

func TestDriver_ObserverOrder(t *testing.T) {
	cfg := smallConfig()
	cfg.Sizes = []int{5}
	cfg.Distributions = []dataset.Distribution{dataset.Sorted, dataset.Random}

	obs := &recordingObserver{}
	_, err := NewDriver(cfg, WithObserver(obs)).Run(context.Background())
	require.NoError(t, err)

	want := []string{
		"dist:sorted", "size",
		"cell:insertion_sort", "cell:merge_sort", "cell:builtin_sort", "cell:builtin_sorted",
		"dist:random", "size",
		"cell:insertion_sort", "cell:merge_sort", "cell:builtin_sort", "cell:builtin_sorted",
	}
	assert.Equal(t, want, obs.events)
	assert.Equal(t, 5, obs.cells[0].Size)
}

func TestDriver_EachRunGetsFreshCopy(t *testing.T) {
	cfg := smallConfig()
	cfg.Sizes = []int{5}
	cfg.Runs = 4
	cfg.Distributions = []dataset.Distribution{dataset.ReverseSorted}

	var inputs [][]int
	inPlace := Algorithm{
		Name: "spy",
		Sort: func(s []int) []int {
			inputs = append(inputs, slices.Clone(s))
			slices.Sort(s)
			return s
		},
	}

	_, err := NewDriver(cfg, WithAlgorithms(inPlace)).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, inputs, 4)
	for _, in := range inputs {
		assert.Equal(t, []int{4, 3, 2, 1, 0}, in)
	}
}

func TestDriver_InjectedReferenceSort(t *testing.T) {
	cfg := smallConfig()
	cfg.Sizes = []int{200}
	cfg.Distributions = []dataset.Distribution{dataset.Random}

	var outputs [][]int
	reference := Algorithm{
		Name: "reference",
		Sort: func(s []int) []int {
			slices.Sort(s)
			outputs = append(outputs, s)
			return s
		},
	}
	underTest := Algorithm{
		Name: "merge",
		Sort: func(s []int) []int {
			out := DefaultAlgorithms()[1].Sort(s)
			outputs = append(outputs, out)
			return out
		},
	}

	report, err := NewDriver(cfg, WithAlgorithms(reference, underTest)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 4)
	assert.Equal(t, outputs[0], outputs[2])
	assert.Len(t, report.Series(dataset.Random, "reference"), 1)
	assert.Len(t, report.Series(dataset.Random, "merge"), 1)
}

func TestDriver_VerifyCatchesBrokenSort(t *testing.T) {
	cfg := smallConfig()
	cfg.Distributions = []dataset.Distribution{dataset.ReverseSorted}

	broken := Algorithm{Name: "noop", Sort: func(s []int) []int { return s }}

	_, err := NewDriver(cfg, WithAlgorithms(broken)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncorrectSort)
	assert.Contains(t, err.Error(), "noop")

	cfg.Verify = false
	_, err = NewDriver(cfg, WithAlgorithms(broken)).Run(context.Background())
	assert.NoError(t, err)
}

func TestDriver_InvalidDistribution(t *testing.T) {
	cfg := smallConfig()
	cfg.Distributions = []dataset.Distribution{dataset.Random, "bogus"}

	_, err := NewDriver(cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, sberrors.IsInvalidArgument(err))
	assert.ErrorIs(t, err, dataset.ErrInvalidDistribution)
}

func TestDriver_RepeatedDistribution(t *testing.T) {
	cfg := smallConfig()
	cfg.Distributions = []dataset.Distribution{dataset.Random, dataset.Random}

	var report *Report
	var err error
	require.NotPanics(t, func() {
		report, err = NewDriver(cfg).Run(context.Background())
	})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "distribution listed more than once")
}

func TestDriver_RepeatedAlgorithmName(t *testing.T) {
	algos := DefaultAlgorithms()
	algos = append(algos, Algorithm{Name: algos[0].Name, Sort: slices.Clone[[]int]})

	_, err := NewDriver(smallConfig(), WithAlgorithms(algos...)).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `algorithm "insertion_sort" registered more than once`)
}

func TestDriver_SeriesMatchSizes(t *testing.T) {
	cfg := smallConfig()
	report, err := NewDriver(cfg).Run(context.Background())
	require.NoError(t, err)

	for _, d := range report.Distributions {
		for _, a := range report.Algorithms {
			assert.Len(t, report.Series(d, a.Name), len(cfg.Sizes), "%s/%s", d, a.Name)
		}
	}
}

func TestDriver_RecordsEffectiveSeed(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 0

	report, err := NewDriver(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, report.Seed, "a clock seed must be recorded so the run can be repeated")
	assert.Equal(t, report.Seed, report.Run().Seed)

	report, err = NewDriver(cfg, WithGenerator(dataset.NewGenerator(11))).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(11), report.Seed)
}

func TestDriver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDriver(smallConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDriver_RecorderSeesEverySample(t *testing.T) {
	cfg := smallConfig()
	rec := &countingRecorder{}

	_, err := NewDriver(cfg, WithRecorder(rec)).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, rec.samples, 12)
	for k, n := range rec.samples {
		assert.Equal(t, len(cfg.Sizes)*cfg.Runs, n, k)
	}
}

func TestReport_Run(t *testing.T) {
	cfg := smallConfig()
	report, err := NewDriver(cfg, WithClock(steppingClock(time.Millisecond))).Run(context.Background())
	require.NoError(t, err)

	run := report.Run()
	assert.Len(t, run.Results, 3*4*3)
	assert.Equal(t, cfg.Sizes, run.Sizes)
	assert.Equal(t, uint64(1), run.Seed)

	first := run.Results[0]
	assert.Equal(t, "random", first.Distribution)
	assert.Equal(t, "insertion_sort", first.Algorithm)
	assert.Equal(t, 0, first.Size)
	assert.InDelta(t, 0.001, first.AvgSeconds, 1e-12)
}

// Timing is noisy, so a decrease is only logged.
func TestDriver_TimingGrowsWithSize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing check in short mode")
	}
	cfg := Config{
		Sizes:         []int{100, 1000, 4000},
		Runs:          3,
		Distributions: []dataset.Distribution{dataset.Random},
		Seed:          3,
	}

	report, err := NewDriver(cfg).Run(context.Background())
	require.NoError(t, err)

	for _, a := range report.Algorithms {
		series := report.Series(dataset.Random, a.Name)
		for i := 1; i < len(series); i++ {
			if series[i] < series[i-1] {
				t.Logf("%s: average dropped from %v (n=%d) to %v (n=%d)",
					a.Name, series[i-1], cfg.Sizes[i-1], series[i], cfg.Sizes[i])
			}
		}
	}
}
