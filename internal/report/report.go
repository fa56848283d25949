// Package report renders analysis results as downloadable text or JSON documents.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Format selects the output encoding of a report.
type Format string

const (
	// FormatText is the fixed plain-text layout
	FormatText Format = "text"
	// FormatJSON is indented JSON
	FormatJSON Format = "json"
)

// DefaultFilename is the suggested name for a downloaded text report.
const DefaultFilename = "ats-analysis-report.txt"

// FormatError reports an unknown output format.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported report format %q (want text or json)", e.Format)
}

// ParseFormat converts a user-supplied string to a Format. Matching ignores case
// and surrounding whitespace; "txt" is accepted as an alias for text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", &FormatError{Format: s}
	}
}

// Write renders result to w in the requested format. generatedAt only affects
// the text layout.
func Write(w io.Writer, format Format, result *types.AnalysisResult, generatedAt time.Time) error {
	switch format {
	case FormatText:
		return WriteText(w, result, generatedAt)
	case FormatJSON:
		return WriteJSON(w, result)
	default:
		return &FormatError{Format: string(format)}
	}
}

// WriteRanking renders a ranked batch to w in the requested format.
func WriteRanking(w io.Writer, format Format, ranked []types.RankedResult, generatedAt time.Time) error {
	switch format {
	case FormatText:
		return WriteRankingText(w, ranked, generatedAt)
	case FormatJSON:
		return writeIndented(w, ranked)
	default:
		return &FormatError{Format: string(format)}
	}
}
