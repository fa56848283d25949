package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	reportTitle     = "ATS Resume Analysis Report"
	reportUnderline = "=========================="
	listBullet      = "• "
	dateLayout      = "2006-01-02"
)

// WriteText writes the plain-text report:
//
//	ATS Resume Analysis Report
//	==========================
//
//	Overall Score: N%
//	...
//	Matched Keywords:
//	• keyword
//
//	Generated on: YYYY-MM-DD
//
// An empty list leaves a blank line under its header.
func WriteText(w io.Writer, result *types.AnalysisResult, generatedAt time.Time) error {
	if result == nil {
		return fmt.Errorf("cannot write report: nil result")
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, reportTitle)
	fmt.Fprintln(bw, reportUnderline)
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Overall Score: %d%%\n", result.OverallScore)
	fmt.Fprintf(bw, "Keyword Match: %d%%\n", result.KeywordMatch)
	fmt.Fprintf(bw, "Skills Match: %d%%\n", result.SkillsMatch)
	fmt.Fprintf(bw, "Format Score: %d%%\n", result.FormatScore)
	fmt.Fprintf(bw, "Readability: %d%%\n", result.ReadabilityScore)
	fmt.Fprintln(bw)

	writeList(bw, "Matched Keywords:", result.MatchedKeywords)
	writeList(bw, "Missing Keywords:", result.MissingKeywords)
	writeList(bw, "Recommendations:", result.Recommendations)

	fmt.Fprintf(bw, "Generated on: %s\n", generatedAt.Format(dateLayout))

	return bw.Flush()
}

// writeList writes a header, one bulleted line per item, then a blank line.
func writeList(w io.Writer, header string, items []string) {
	fmt.Fprintln(w, header)
	if len(items) == 0 {
		fmt.Fprintln(w)
	}
	for _, item := range items {
		fmt.Fprintf(w, "%s%s\n", listBullet, item)
	}
	fmt.Fprintln(w)
}

// WriteRankingText writes a ranked batch as one block per résumé.
func WriteRankingText(w io.Writer, ranked []types.RankedResult, generatedAt time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ATS Resume Ranking")
	fmt.Fprintln(bw, "==================")
	fmt.Fprintln(bw)

	if len(ranked) == 0 {
		fmt.Fprintln(bw, "No résumés analysed.")
		fmt.Fprintln(bw)
	}
	for _, r := range ranked {
		if r.Result == nil {
			fmt.Fprintf(bw, "%d. %s\n", r.Rank, r.Name)
		} else {
			fmt.Fprintf(bw, "%d. %s: %d%% (%s)\n", r.Rank, r.Name, r.Result.OverallScore, types.RatingFor(r.Result.OverallScore))
		}
		if r.Notes != "" {
			fmt.Fprintf(bw, "   %s\n", r.Notes)
		}
	}
	if len(ranked) > 0 {
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "Generated on: %s\n", generatedAt.Format(dateLayout))

	return bw.Flush()
}
