package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// WriteJSON writes result as two-space indented JSON followed by a newline.
func WriteJSON(w io.Writer, result *types.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("cannot write report: nil result")
	}
	return writeIndented(w, result)
}

func writeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
