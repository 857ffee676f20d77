package report

import (
	"fmt"
	"strings"

	"sortbench/internal/benchmark"

	"github.com/charmbracelet/glamour"
)

// Markdown renders the summary tables and, optionally, the analysis as a
// markdown document.
func Markdown(r *benchmark.Report, withNarrative bool) string {
	var b strings.Builder

	b.WriteString("# Sorting benchmark\n\n")
	fmt.Fprintf(&b, "Average time in seconds over %d repetitions per cell.\n", r.Runs)

	for _, d := range r.Distributions {
		fmt.Fprintf(&b, "\n## %s\n\n", DistributionTitle(d))

		b.WriteString("| Size |")
		for _, a := range r.Algorithms {
			fmt.Fprintf(&b, " %s |", algorithmLabel(a))
		}
		b.WriteString("\n|---:|")
		for range r.Algorithms {
			b.WriteString("---:|")
		}
		b.WriteString("\n")

		for i, size := range r.Sizes {
			fmt.Fprintf(&b, "| %d |", size)
			for _, a := range r.Algorithms {
				series := r.Series(d, a.Name)
				if i < len(series) {
					fmt.Fprintf(&b, " %.6f |", series[i].Seconds())
				} else {
					b.WriteString(" - |")
				}
			}
			b.WriteString("\n")
		}
	}

	if withNarrative {
		b.WriteString("\n## Analysis\n")
		for _, section := range narrative {
			fmt.Fprintf(&b, "\n### %s\n\n", section.title)
			for _, line := range section.lines {
				fmt.Fprintf(&b, "- %s\n", line)
			}
		}
		b.WriteString("\n## Conclusions\n\n")
		for _, line := range conclusions {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

// RenderMarkdown formats markdown for the terminal. With plain set the
// document is styled without colours.
func RenderMarkdown(md string, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}
