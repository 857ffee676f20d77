package benchmark

import "fmt"

// Comparison is the change of one benchmark cell between two runs.
type Comparison struct {
	Distribution string
	Algorithm    string
	Size         int
	Diff         float64 // Percentage change of the average time
	Prev         Result
	Curr         Result
}

type cellKey struct {
	distribution string
	algorithm    string
	size         int
}

// Compare runs comparison between two runs.
// It returns a comparison for every cell present in both runs, in the order
// of curr.
func Compare(prev, curr Run) []Comparison {
	prevMap := make(map[cellKey]Result)
	for _, r := range prev.Results {
		prevMap[cellKey{r.Distribution, r.Algorithm, r.Size}] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevMap[cellKey{c.Distribution, c.Algorithm, c.Size}]
		if !ok {
			continue
		}
		comp := Comparison{
			Distribution: c.Distribution,
			Algorithm:    c.Algorithm,
			Size:         c.Size,
			Prev:         p,
			Curr:         c,
		}
		if p.AvgSeconds > 0 {
			comp.Diff = (c.AvgSeconds - p.AvgSeconds) / p.AvgSeconds * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Regressed reports whether the cell got slower by more than threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return c.Diff > threshold
}

// Improved reports whether the cell got faster by more than threshold percent.
func (c Comparison) Improved(threshold float64) bool {
	return c.Diff < -threshold
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s/%s/%d: %+.2f%%", c.Distribution, c.Algorithm, c.Size, c.Diff)
}
