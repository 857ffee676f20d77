// Package dataset generates the synthetic integer inputs fed to the sorters.
package dataset

import (
	"errors"
	"math/rand/v2"
	"time"

	sberrors "sortbench/internal/errors"
)

// Distribution describes the pre-existing order of a generated dataset.
type Distribution string

const (
	Random        Distribution = "random"
	Sorted        Distribution = "sorted"
	ReverseSorted Distribution = "reverse_sorted"
)

// DefaultMaxValue is the inclusive upper bound for random values.
const DefaultMaxValue = 1_000_000

// ErrInvalidDistribution is wrapped by the error returned for unknown tags.
var ErrInvalidDistribution = errors.New("invalid distribution")

// Distributions returns the recognized distributions in benchmark order.
func Distributions() []Distribution {
	return []Distribution{Random, Sorted, ReverseSorted}
}

// Valid reports whether d is one of the recognized distributions.
func (d Distribution) Valid() bool {
	switch d {
	case Random, Sorted, ReverseSorted:
		return true
	}
	return false
}

func (d Distribution) String() string { return string(d) }

// ParseDistribution converts a user supplied tag into a Distribution.
func ParseDistribution(tag string) (Distribution, error) {
	d := Distribution(tag)
	if !d.Valid() {
		return "", invalidDistribution(tag)
	}
	return d, nil
}

func invalidDistribution(tag string) error {
	allowed := make([]string, 0, 3)
	for _, d := range Distributions() {
		allowed = append(allowed, string(d))
	}
	return sberrors.NewInvalidArgument("distribution", tag, allowed, ErrInvalidDistribution)
}

// Generator produces datasets. It is not safe for concurrent use.
type Generator struct {
	rng      *rand.Rand
	seed     uint64
	maxValue int
}

// NewGenerator returns a Generator seeded with seed. A zero seed draws one
// from the clock.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		seed:     seed,
		maxValue: DefaultMaxValue,
	}
}

// Seed returns the seed in use, including one drawn from the clock.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// WithMaxValue sets the inclusive upper bound for random values.
func (g *Generator) WithMaxValue(maxValue int) *Generator {
	g.maxValue = maxValue
	return g
}

// Generate returns a new dataset of the given size and distribution.
// A negative size yields an empty dataset.
func (g *Generator) Generate(size int, d Distribution) ([]int, error) {
	if size < 0 {
		size = 0
	}

	switch d {
	case Random:
		data := make([]int, size)
		for i := range data {
			data[i] = g.rng.IntN(g.maxValue + 1)
		}
		return data, nil
	case Sorted:
		data := make([]int, size)
		for i := range data {
			data[i] = i
		}
		return data, nil
	case ReverseSorted:
		data := make([]int, size)
		for i := range data {
			data[i] = size - 1 - i
		}
		return data, nil
	default:
		return nil, invalidDistribution(string(d))
	}
}
