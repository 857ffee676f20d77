package report

import (
	"fmt"
	"io"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
)

// Progress prints one line per benchmark event as the driver advances.
type Progress struct {
	w io.Writer
}

// NewProgress returns a benchmark.Observer writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

func (p *Progress) DistributionStarted(d dataset.Distribution) {
	fmt.Fprintf(p.w, "\nTesting %s data:\n", DistributionTitle(d))
}

func (p *Progress) SizeStarted(d dataset.Distribution, size int) {
	fmt.Fprintf(p.w, "  Size: %d\n", size)
}

func (p *Progress) Measured(m benchmark.Measurement) {
	label := m.Algorithm.Label
	if label == "" {
		label = m.Algorithm.Name
	}
	fmt.Fprintf(p.w, "    %-22s %.6f s\n", label+":", m.Average.Seconds())
}

// DistributionTitle turns a distribution tag into display text.
func DistributionTitle(d dataset.Distribution) string {
	return strings.ReplaceAll(string(d), "_", " ")
}
