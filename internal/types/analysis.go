// Package types provides type definitions for structured data used throughout the ats-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisResult is the outcome of comparing one résumé against one job description.
// Every score is an integer in [0, 100].
type AnalysisResult struct {
	OverallScore     int      `json:"overall_score"`
	KeywordMatch     int      `json:"keyword_match"`
	SkillsMatch      int      `json:"skills_match"`
	FormatScore      int      `json:"format_score"`
	ReadabilityScore int      `json:"readability_score"`
	MatchedKeywords  []string `json:"matched_keywords"`
	MissingKeywords  []string `json:"missing_keywords"` // At most 15 entries
	Recommendations  []string `json:"recommendations"`
	StrengthsFound   []string `json:"strengths_found"`
	ImprovementAreas []string `json:"improvement_areas"`
}

// Document is a named block of plain text, e.g. one résumé in a batch.
type Document struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"notblank"`
}

// BatchEntry pairs a document name with its analysis result.
type BatchEntry struct {
	Name   string          `json:"name"`
	Result *AnalysisResult `json:"result"`
}

// RankedResult is a BatchEntry with its position in a ranking (1-based).
type RankedResult struct {
	Rank   int             `json:"rank"`
	Name   string          `json:"name"`
	Result *AnalysisResult `json:"result"`
	Notes  string          `json:"notes,omitempty"`
}

// Rating is a coarse band for a score.
type Rating string

const (
	// RatingGood covers scores of 80 and above
	RatingGood Rating = "good"
	// RatingFair covers scores from 60 to 79
	RatingFair Rating = "fair"
	// RatingPoor covers scores below 60
	RatingPoor Rating = "poor"
)

// RatingFor returns the band a score falls into.
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingGood
	case score >= 60:
		return RatingFair
	default:
		return RatingPoor
	}
}
