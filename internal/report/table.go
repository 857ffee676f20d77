// Package report renders benchmark reports, run history and comparisons.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"sortbench/internal/benchmark"
)

func algorithmLabel(a benchmark.Algorithm) string {
	if a.Label != "" {
		return a.Label
	}
	return a.Name
}

// WriteTables writes one summary table per distribution with the average
// time of every algorithm in seconds.
func WriteTables(w io.Writer, r *benchmark.Report) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Summary (average time in seconds)"))

	for _, d := range r.Distributions {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Distribution: "+DistributionTitle(d)))

		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		header := []string{"SIZE"}
		for _, a := range r.Algorithms {
			header = append(header, strings.ToUpper(algorithmLabel(a)))
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))

		for i, size := range r.Sizes {
			row := []string{fmt.Sprintf("%d", size)}
			for _, a := range r.Algorithms {
				series := r.Series(d, a.Name)
				if i < len(series) {
					row = append(row, fmt.Sprintf("%.6f", series[i].Seconds()))
				} else {
					row = append(row, "-")
				}
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d repetitions per cell, total wall time %s", r.Runs, r.Elapsed.Round(time.Millisecond))))
	return nil
}
