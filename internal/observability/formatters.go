// Package observability provides formatted terminal output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// scoreBar renders a score in [0, 100] as a fixed-width bar.
func scoreBar(score int) string {
	filled := max(0, min(barWidth, score*barWidth/100))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func scoreLine(label string, score int) string {
	return fmt.Sprintf("%-14s %s %3d%% %s\n", label, scoreBar(score), score, types.RatingFor(score))
}

// writeItems lists up to maxItemsToShow items under a header.
func writeItems(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s\n", header))
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintAnalysis outputs the scores of a single analysis with score bars and the
// leading keyword lists.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(scoreLine("Overall", result.OverallScore))
	sb.WriteString("\n")
	sb.WriteString(scoreLine("Keyword Match", result.KeywordMatch))
	sb.WriteString(scoreLine("Skills Match", result.SkillsMatch))
	sb.WriteString(scoreLine("Format", result.FormatScore))
	sb.WriteString(scoreLine("Readability", result.ReadabilityScore))

	writeItems(&sb, fmt.Sprintf("Matched keywords (%d):", len(result.MatchedKeywords)), result.MatchedKeywords)
	writeItems(&sb, fmt.Sprintf("Missing keywords (%d):", len(result.MissingKeywords)), result.MissingKeywords)

	p.printBox("ATS ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintFormatChecks outputs the individual structural checks behind a format
// score and the readability counts.
func (p *Printer) PrintFormatChecks(format analysis.FormatReport, readability analysis.ReadabilityStats) {
	var sb strings.Builder

	sb.WriteString(checkLine("Bullet points", format.HasBullets))
	sb.WriteString(checkLine(fmt.Sprintf("Section headers (%d)", len(format.Sections)), len(format.Sections) >= 2))
	sb.WriteString(checkLine("Dates", format.HasDates))
	sb.WriteString(checkLine("Email address", format.HasEmail))
	sb.WriteString(checkLine("Phone number", format.HasPhone))
	if len(format.Sections) > 0 {
		sb.WriteString(fmt.Sprintf("Sections: %s\n", strings.Join(format.Sections, ", ")))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Words: %d  Sentences: %d  Avg: %.1f",
		readability.Words, readability.Sentences, readability.WordsPerSentence))

	p.printBox("FORMAT CHECKS", sb.String())
}

func checkLine(label string, ok bool) string {
	mark := "✗"
	if ok {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s\n", mark, label)
}

// PrintSkills outputs the catalog skills detected in each text.
func (p *Printer) PrintSkills(comparison analysis.SkillComparison) {
	var sb strings.Builder

	if len(comparison.Job) == 0 {
		sb.WriteString(fmt.Sprintf("No catalog skills in job description (default %d%%)", comparison.Score))
	} else {
		sb.WriteString(fmt.Sprintf("Score: %d%%\n", comparison.Score))
		sb.WriteString(fmt.Sprintf("Required: %s\n", strings.Join(comparison.Job, ", ")))
		if len(comparison.Matched) > 0 {
			sb.WriteString(fmt.Sprintf("Matched:  %s\n", strings.Join(comparison.Matched, ", ")))
		}
		if len(comparison.Missing) > 0 {
			sb.WriteString(fmt.Sprintf("Missing:  %s\n", strings.Join(comparison.Missing, ", ")))
		}
	}

	p.printBox("SKILLS", strings.TrimRight(sb.String(), "\n"))
}

// PrintRanking outputs the top entries of a ranked batch.
func (p *Printer) PrintRanking(ranked []types.RankedResult) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total résumés ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", r.Rank, r.Name))
		if r.Result != nil {
			sb.WriteString(fmt.Sprintf("    %s %3d%%\n", scoreBar(r.Result.OverallScore), r.Result.OverallScore))
		}
		if r.Notes != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.Notes))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more résumés", len(ranked)-maxItemsToShow))
	}

	p.printBox("RANKED RÉSUMÉS", strings.TrimRight(sb.String(), "\n"))
}
