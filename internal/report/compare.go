package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"sortbench/internal/benchmark"
)

// WriteComparison prints the change of every cell against the previous run.
// It returns the number of cells that regressed beyond threshold.
func WriteComparison(w io.Writer, comparisons []benchmark.Comparison, threshold float64) (int, error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Comparison with previous run"))

	if len(comparisons) == 0 {
		fmt.Fprintln(w, "No matching cells to compare.")
		return 0, nil
	}

	regressions := 0
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "DISTRIBUTION\tALGORITHM\tSIZE\tPREV (S)\tCURR (S)\tDIFF %\tSTATUS")
	for _, c := range comparisons {
		status := "PASS"
		switch {
		case c.Regressed(threshold):
			status = regressedStyle.Render("SLOWER")
			regressions++
		case c.Improved(threshold):
			status = improvedStyle.Render("FASTER")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.6f\t%.6f\t%+.2f%%\t%s\n",
			c.Distribution, c.Algorithm, c.Size, c.Prev.AvgSeconds, c.Curr.AvgSeconds, c.Diff, status)
	}
	return regressions, tw.Flush()
}

// WriteHistory lists stored runs, oldest first.
func WriteHistory(w io.Writer, runs []benchmark.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No benchmark runs stored.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	now := time.Now()
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tRUNS\tSIZES\tCELLS\tAGE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%v\t%d\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Runs, r.Sizes, len(r.Results), formatAge(r.Timestamp, now))
	}
	return tw.Flush()
}
