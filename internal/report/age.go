package report

import (
	"fmt"
	"time"
)

// formatAge describes how long before now t happened, e.g. "3h ago".
func formatAge(t, now time.Time) string {
	if t.IsZero() {
		return "N/A"
	}

	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	since := now.Sub(t)
	switch {
	case since < 0:
		return "0s ago"
	case since < time.Minute:
		return fmt.Sprintf("%ds ago", int(since.Seconds()))
	case since < time.Hour:
		return fmt.Sprintf("%dm ago", int(since.Minutes()))
	case since < day:
		return fmt.Sprintf("%dh ago", int(since.Hours()))
	case since < week:
		return fmt.Sprintf("%dd ago", int(since/day))
	case since < month:
		return fmt.Sprintf("%dw ago", int(since/week))
	case since < year:
		return fmt.Sprintf("%dmo ago", int(since/month))
	}
	return fmt.Sprintf("%dy ago", int(since/year))
}
