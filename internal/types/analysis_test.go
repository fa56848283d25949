package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisResult_JSONFieldNames(t *testing.T) {
	result := AnalysisResult{
		OverallScore:     62,
		KeywordMatch:     50,
		SkillsMatch:      50,
		FormatScore:      100,
		ReadabilityScore: 65,
		MatchedKeywords:  []string{"python"},
		MissingKeywords:  []string{"aws"},
		Recommendations:  []string{"Use action verbs to describe your accomplishments"},
		StrengthsFound:   []string{"Clear contact information"},
		ImprovementAreas: []string{"Skills alignment"},
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"overall_score": 62`)
	assert.Contains(t, string(jsonBytes), `"keyword_match": 50`)
	assert.Contains(t, string(jsonBytes), `"skills_match": 50`)
	assert.Contains(t, string(jsonBytes), `"format_score": 100`)
	assert.Contains(t, string(jsonBytes), `"readability_score": 65`)
	assert.Contains(t, string(jsonBytes), `"missing_keywords"`)
	assert.Contains(t, string(jsonBytes), `"strengths_found"`)
	assert.Contains(t, string(jsonBytes), `"improvement_areas"`)
}

func TestRankedResult_NotesOmittedWhenEmpty(t *testing.T) {
	jsonBytes, err := json.Marshal(RankedResult{Rank: 1, Name: "a.txt"})
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "notes")
	assert.Contains(t, string(jsonBytes), `"rank":1`)
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		score    int
		expected Rating
	}{
		{100, RatingGood},
		{80, RatingGood},
		{79, RatingFair},
		{60, RatingFair},
		{59, RatingPoor},
		{0, RatingPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RatingFor(tt.score), "score %d", tt.score)
	}
}
