package report

import (
	"encoding/json"
	"io"

	"sortbench/internal/benchmark"
)

// WriteJSON writes run as indented JSON.
func WriteJSON(w io.Writer, run benchmark.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
