// Package ranking orders analysed résumés by how well they fit a job description.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Rank sorts batch entries by overall score (descending) and assigns 1-based ranks.
// Ties fall back to keyword match, then to name so the order is deterministic.
// Entries without a result are ranked last. The input slice is not modified.
func Rank(entries []types.BatchEntry) []types.RankedResult {
	sorted := make([]types.BatchEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a.Result == nil) != (b.Result == nil) {
			return b.Result == nil
		}
		if a.Result != nil {
			if a.Result.OverallScore != b.Result.OverallScore {
				return a.Result.OverallScore > b.Result.OverallScore
			}
			if a.Result.KeywordMatch != b.Result.KeywordMatch {
				return a.Result.KeywordMatch > b.Result.KeywordMatch
			}
		}
		return a.Name < b.Name
	})

	ranked := make([]types.RankedResult, 0, len(sorted))
	for i, entry := range sorted {
		ranked = append(ranked, types.RankedResult{
			Rank:   i + 1,
			Name:   entry.Name,
			Result: entry.Result,
			Notes:  generateNotes(entry.Result),
		})
	}

	return ranked
}

// generateNotes creates a brief explanation of a ranking position.
func generateNotes(result *types.AnalysisResult) string {
	if result == nil {
		return "Not analysed"
	}

	var parts []string

	// Keyword match description
	switch {
	case result.KeywordMatch >= 70:
		parts = append(parts, "Strong keyword match")
	case result.KeywordMatch >= 40:
		parts = append(parts, "Moderate keyword match")
	case result.KeywordMatch > 0:
		parts = append(parts, "Weak keyword match")
	default:
		parts = append(parts, "No keyword matches")
	}

	// Skills description
	if result.SkillsMatch >= 80 {
		parts = append(parts, "Skills aligned")
	} else {
		parts = append(parts, fmt.Sprintf("Skills gap (%d%%)", result.SkillsMatch))
	}

	if result.FormatScore < 85 {
		parts = append(parts, "Formatting needs work")
	}

	if n := len(result.MissingKeywords); n > 0 {
		top := result.MissingKeywords[:min(n, 3)]
		parts = append(parts, fmt.Sprintf("Missing %s", strings.Join(top, ", ")))
	}

	return strings.Join(parts, ". ")
}
