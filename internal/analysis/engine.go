package analysis

import "github.com/jonathan/ats-analyzer/internal/types"

// Analyze compares a résumé with a job description and returns a fresh result.
// It never fails: empty inputs produce defined low scores.
func Analyze(resumeText, jobText string) *types.AnalysisResult {
	keywords := MatchKeywords(ExtractKeywords(resumeText), ExtractKeywords(jobText))

	scores := SubScores{
		KeywordMatch: keywords.Percentage,
		SkillsMatch:  MatchSkills(resumeText, jobText),
		Format:       ScoreFormat(resumeText),
		Readability:  ScoreReadability(resumeText),
	}

	return &types.AnalysisResult{
		OverallScore:     OverallScore(scores),
		KeywordMatch:     scores.KeywordMatch,
		SkillsMatch:      scores.SkillsMatch,
		FormatScore:      scores.Format,
		ReadabilityScore: scores.Readability,
		MatchedKeywords:  keywords.Matched,
		MissingKeywords:  keywords.Missing,
		Recommendations:  Recommend(scores, keywords.Missing),
		StrengthsFound:   append([]string(nil), staticStrengths...),
		ImprovementAreas: append([]string(nil), staticImprovementAreas...),
	}
}
