package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	prev := Run{
		Results: []Result{
			{Distribution: "random", Algorithm: "merge_sort", Size: 100, AvgSeconds: 0.010},
			{Distribution: "random", Algorithm: "merge_sort", Size: 1000, AvgSeconds: 0.200},
			{Distribution: "sorted", Algorithm: "merge_sort", Size: 100, AvgSeconds: 0},
		},
	}
	curr := Run{
		Results: []Result{
			{Distribution: "random", Algorithm: "merge_sort", Size: 100, AvgSeconds: 0.011},  // 10% slower
			{Distribution: "random", Algorithm: "merge_sort", Size: 1000, AvgSeconds: 0.150}, // 25% faster
			{Distribution: "random", Algorithm: "merge_sort", Size: 5000, AvgSeconds: 1.0},   // New
			{Distribution: "sorted", Algorithm: "merge_sort", Size: 100, AvgSeconds: 0.001},
		},
	}

	comps := Compare(prev, curr)

	assert.Len(t, comps, 3)

	c := comps[0]
	assert.Equal(t, "random", c.Distribution)
	assert.Equal(t, 100, c.Size)
	assert.InDelta(t, 10.0, c.Diff, 0.01)
	assert.True(t, c.Regressed(5))
	assert.False(t, c.Regressed(15))

	assert.InDelta(t, -25.0, comps[1].Diff, 0.01)
	assert.True(t, comps[1].Improved(10))
	assert.Equal(t, "random/merge_sort/1000: -25.00%", comps[1].String())

	assert.Zero(t, comps[2].Diff, "zero baseline yields no percentage")
}
